package employee_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/frahmantamala/employee-records/internal"
	employeeDatamodel "github.com/frahmantamala/employee-records/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-records/internal/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockRepository implements employee.Repository for testing
type MockRepository struct {
	employees  []*employeeDatamodel.Employee
	nextID     int64
	shouldFail bool
	failError  error
	lastQuery  employee.ListQuery
	replaced   int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{nextID: 1}
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) List(ctx context.Context, q employee.ListQuery) ([]*employeeDatamodel.Employee, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	m.lastQuery = q
	return m.employees, int64(len(m.employees)), nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, e := range m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Count(ctx context.Context) (int64, error) {
	if m.shouldFail {
		return 0, m.failError
	}
	return int64(len(m.employees)), nil
}

func (m *MockRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	e.ID = m.nextID
	m.nextID++
	m.employees = append(m.employees, e)
	return nil
}

func (m *MockRepository) ReplaceAll(ctx context.Context, employees []*employeeDatamodel.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	m.replaced++
	m.employees = nil
	for _, e := range employees {
		e.ID = m.nextID
		m.nextID++
		m.employees = append(m.employees, e)
	}
	return nil
}

func validDTO() employee.CreateEmployeeDTO {
	return employee.CreateEmployeeDTO{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Age:       36,
		HireDate:  time.Date(2015, time.December, 10, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}
}

var _ = Describe("Employee Service", func() {
	var (
		mockRepo *MockRepository
		service  *employee.Service
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(mockRepo, logger)
		ctx = context.Background()
	})

	Describe("ListEmployees", func() {
		It("returns every stored employee for the zero query", func() {
			_, err := service.Seed(ctx, employee.Fixtures())
			Expect(err).NotTo(HaveOccurred())

			page, err := service.ListEmployees(ctx, employee.ListQuery{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Employees).To(HaveLen(9))
			Expect(page.Total).To(Equal(int64(9)))
			Expect(page.Page).To(Equal(1))
			Expect(page.TotalPages()).To(Equal(1))
		})

		It("passes the query through to the repository", func() {
			active := true
			q := employee.ListQuery{Search: "ann", Active: &active, SortBy: "age", Desc: true, Page: 2, PerPage: 5}
			_, err := service.ListEmployees(ctx, q)
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastQuery).To(Equal(q))
		})

		It("reports page 1 when paging is off", func() {
			_, err := service.Seed(ctx, employee.Fixtures())
			Expect(err).NotTo(HaveOccurred())

			page, err := service.ListEmployees(ctx, employee.ListQuery{Page: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Employees).To(HaveLen(9))
			Expect(page.Page).To(Equal(1))
			Expect(page.ToResponse().Page).To(Equal(1))
			Expect(page.HasNext()).To(BeFalse())
		})

		It("keeps the requested page when paging", func() {
			page, err := service.ListEmployees(ctx, employee.ListQuery{Page: 3, PerPage: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Page).To(Equal(3))
		})

		It("wraps repository failures in an internal error", func() {
			mockRepo.SetShouldFail(true, errors.New("database error"))

			page, err := service.ListEmployees(ctx, employee.ListQuery{})
			Expect(page).To(BeNil())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(err.Error()).To(ContainSubstring("database error"))
		})
	})

	Describe("GetEmployee", func() {
		It("returns the employee when present", func() {
			created, err := service.CreateEmployee(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			found, err := service.GetEmployee(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Email).To(Equal("ada@example.com"))
			Expect(found.StatusLabel()).To(Equal(employee.StatusActive))
		})

		It("returns ErrEmployeeNotFound when missing", func() {
			found, err := service.GetEmployee(ctx, 42)
			Expect(found).To(BeNil())
			Expect(err).To(MatchError(internal.ErrEmployeeNotFound))
		})
	})

	Describe("CreateEmployee", func() {
		It("rejects invalid input with field errors", func() {
			dto := validDTO()
			dto.Email = "not-an-email"
			dto.Age = 0

			_, err := service.CreateEmployee(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))

			details := appErr.Details.(internal.ValidationErrors)
			fields := make([]string, len(details.Errors))
			for i, e := range details.Errors {
				fields[i] = e.Field
			}
			Expect(fields).To(ConsistOf("email", "age"))
		})

		It("rejects a duplicate email", func() {
			_, err := service.CreateEmployee(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateEmployee(ctx, validDTO())
			Expect(err).To(MatchError(internal.ErrDuplicateEmail))
		})

		It("stores the hire date without a clock component", func() {
			dto := validDTO()
			dto.HireDate = time.Date(2015, time.December, 10, 17, 45, 0, 0, time.UTC)

			created, err := service.CreateEmployee(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.HireDate.Hour()).To(Equal(0))
			Expect(created.HireDate.Format(employee.DateLayout)).To(Equal("2015-12-10"))
		})
	})

	Describe("Seed", func() {
		It("replaces existing rows with the nine fixtures", func() {
			_, err := service.CreateEmployee(ctx, validDTO())
			Expect(err).NotTo(HaveOccurred())

			n, err := service.Seed(ctx, employee.Fixtures())
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(9))
			Expect(mockRepo.replaced).To(Equal(1))

			count, err := service.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(9)))
		})

		It("refuses a batch that repeats an email", func() {
			batch := []employee.CreateEmployeeDTO{validDTO(), validDTO()}
			batch[1].Email = "ADA@example.com"

			_, err := service.Seed(ctx, batch)
			Expect(err).To(MatchError(internal.ErrDuplicateEmail))
			Expect(mockRepo.replaced).To(Equal(0))
		})

		It("refuses a batch with an invalid record", func() {
			batch := []employee.CreateEmployeeDTO{validDTO()}
			batch[0].FirstName = ""

			_, err := service.Seed(ctx, batch)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("seed record 1"))
			Expect(mockRepo.replaced).To(Equal(0))
		})

		It("surfaces repository failures", func() {
			mockRepo.SetShouldFail(true, errors.New("disk full"))

			_, err := service.Seed(ctx, employee.Fixtures())
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("disk full"))
		})
	})
})
