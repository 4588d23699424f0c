package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/employee-records/internal/transport/swagger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	It("validates and documents every employee route", func() {
		doc, err := swagger.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{"/ping", "/health", "/employees", "/employees/export.xlsx", "/employees/{id}"} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), path)
		}
	})

	It("serves the raw document", func() {
		w := httptest.NewRecorder()
		swagger.SpecHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, swagger.SpecPath, nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/yaml"))
		Expect(w.Body.Bytes()).To(Equal(swagger.Spec()))
	})
})
