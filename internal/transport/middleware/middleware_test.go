package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/employee-records/internal/transport/middleware"
	"github.com/frahmantamala/employee-records/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Middleware", func() {
	var (
		logs    *bytes.Buffer
		slogger *slog.Logger
	)

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		slogger = slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	Describe("RequestID", func() {
		var seen string

		handler := func() http.Handler {
			return middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = middleware.RequestIDFromRequest(r)
			}))
		}

		BeforeEach(func() {
			seen = ""
		})

		It("mints an id when none is sent", func() {
			w := httptest.NewRecorder()
			handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(seen).NotTo(BeEmpty())
			Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal(seen))
		})

		It("reuses an inbound id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "req-42")
			w := httptest.NewRecorder()
			handler().ServeHTTP(w, req)

			Expect(seen).To(Equal("req-42"))
			Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-42"))
		})

		It("tags the request logger", func() {
			logger.Setup(logger.Options{Format: "text", Output: logs})
			DeferCleanup(func() { logger.Init("test") })

			h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.From(r.Context()).Info("inside")
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "req-7")
			h.ServeHTTP(httptest.NewRecorder(), req)

			Expect(logs.String()).To(ContainSubstring("request_id=req-7"))
		})
	})

	Describe("LoggingMiddleware", func() {
		It("logs the status and masks credentials", func() {
			h := middleware.LoggingMiddleware(slogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"error":"missing"}`))
			}))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/9", nil)
			req.Header.Set("Cookie", "session=secret-value")

			h.ServeHTTP(httptest.NewRecorder(), req)

			out := logs.String()
			Expect(out).To(ContainSubstring("status_code=404"))
			Expect(out).To(ContainSubstring("level=WARN"))
			Expect(out).To(ContainSubstring("[FILTERED]"))
			Expect(out).NotTo(ContainSubstring("secret-value"))
			Expect(out).To(ContainSubstring("missing"))
		})

		It("leaves HTML bodies out of the log", func() {
			h := middleware.LoggingMiddleware(slogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte("<p>employee table</p>"))
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(logs.String()).To(ContainSubstring("status_code=200"))
			Expect(logs.String()).NotTo(ContainSubstring("employee table"))
		})
	})

	Describe("RecoveryMiddleware", func() {
		panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("kaboom")
		})

		It("answers API calls with a JSON error", func() {
			w := httptest.NewRecorder()
			middleware.RecoveryMiddleware(slogger)(panicky).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Body.String()).To(ContainSubstring(`"code":"INTERNAL_ERROR"`))
			Expect(logs.String()).To(ContainSubstring("kaboom"))
		})

		It("answers page requests with plain text", func() {
			w := httptest.NewRecorder()
			middleware.RecoveryMiddleware(slogger)(panicky).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(ContainSubstring("Internal Server Error"))
		})
	})
})
