package employee_test

import (
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/employee-records/internal"
	"github.com/frahmantamala/employee-records/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Employee DTOs", func() {
	Describe("CreateEmployeeDTO.Validate", func() {
		It("accepts every fixture", func() {
			for _, dto := range employee.Fixtures() {
				Expect(dto.Validate()).To(Succeed(), dto.Email)
			}
		})

		DescribeTable("rejects a bad field",
			func(mutate func(*employee.CreateEmployeeDTO), field string) {
				dto := validDTO()
				mutate(&dto)

				err := dto.Validate()
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				details := appErr.Details.(internal.ValidationErrors)
				Expect(details.Errors).To(HaveLen(1))
				Expect(details.Errors[0].Field).To(Equal(field))
			},
			Entry("blank first name", func(d *employee.CreateEmployeeDTO) { d.FirstName = "  " }, "firstname"),
			Entry("long last name", func(d *employee.CreateEmployeeDTO) { d.LastName = strings.Repeat("x", 101) }, "lastname"),
			Entry("malformed email", func(d *employee.CreateEmployeeDTO) { d.Email = "nobody@" }, "email"),
			Entry("too young", func(d *employee.CreateEmployeeDTO) { d.Age = 12 }, "age"),
			Entry("too old", func(d *employee.CreateEmployeeDTO) { d.Age = 130 }, "age"),
			Entry("missing hire date", func(d *employee.CreateEmployeeDTO) { d.HireDate = time.Time{} }, "hire_date"),
			Entry("future hire date", func(d *employee.CreateEmployeeDTO) { d.HireDate = time.Now().AddDate(1, 0, 0) }, "hire_date"),
		)
	})

	Describe("ParseListQuery", func() {
		It("defaults to every employee on page one", func() {
			q, err := employee.ParseListQuery(url.Values{})
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Page).To(Equal(1))
			Expect(q.PerPage).To(Equal(0))
			Expect(q.Active).To(BeNil())
			Expect(q.SortColumn()).To(Equal("id"))
			Expect(q.Offset()).To(Equal(0))
		})

		It("reads every supported parameter", func() {
			q, err := employee.ParseListQuery(url.Values{
				"q":        {"  doe "},
				"active":   {"false"},
				"sort":     {"hire_date"},
				"order":    {"DESC"},
				"page":     {"3"},
				"per_page": {"4"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Search).To(Equal("doe"))
			Expect(*q.Active).To(BeFalse())
			Expect(q.SortColumn()).To(Equal("hire_date"))
			Expect(q.Desc).To(BeTrue())
			Expect(q.Offset()).To(Equal(8))
		})

		It("collects every invalid parameter", func() {
			_, err := employee.ParseListQuery(url.Values{
				"active":   {"maybe"},
				"sort":     {"salary"},
				"order":    {"sideways"},
				"page":     {"0"},
				"per_page": {"1000"},
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidQuery))
			Expect(appErr.Details.(internal.ValidationErrors).Errors).To(HaveLen(5))
		})

		It("round trips through Encode", func() {
			active := true
			q := employee.ListQuery{Search: "a b", Active: &active, SortBy: "age", Desc: true, PerPage: 5, Page: 2}
			values, err := url.ParseQuery(q.Encode(3))
			Expect(err).NotTo(HaveOccurred())

			parsed, err := employee.ParseListQuery(values)
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed.Search).To(Equal("a b"))
			Expect(*parsed.Active).To(BeTrue())
			Expect(parsed.SortBy).To(Equal("age"))
			Expect(parsed.Desc).To(BeTrue())
			Expect(parsed.Page).To(Equal(3))
			Expect(parsed.PerPage).To(Equal(5))
		})
	})

	Describe("EmployeePage", func() {
		It("computes page bounds", func() {
			page := &employee.EmployeePage{Total: 9, Page: 2, PerPage: 4}
			Expect(page.TotalPages()).To(Equal(3))
			Expect(page.HasPrev()).To(BeTrue())
			Expect(page.HasNext()).To(BeTrue())

			page.Page = 3
			Expect(page.HasNext()).To(BeFalse())
		})

		It("treats an empty result as a single page", func() {
			page := &employee.EmployeePage{Total: 0, Page: 1, PerPage: 10}
			Expect(page.TotalPages()).To(Equal(1))
			Expect(page.HasNext()).To(BeFalse())
		})
	})

	Describe("Employee.StatusLabel", func() {
		It("renders the active flag", func() {
			Expect((&employee.Employee{Active: true}).StatusLabel()).To(Equal("Active"))
			Expect((&employee.Employee{Active: false}).StatusLabel()).To(Equal("Out of Office"))
		})
	})
})
