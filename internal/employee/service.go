package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/employee-records/internal"
	employeeDatamodel "github.com/frahmantamala/employee-records/internal/core/datamodel/employee"
)

// Repository interface defines the data access methods for employees
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]*employeeDatamodel.Employee, int64, error)
	GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error)
	GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	ReplaceAll(ctx context.Context, employees []*employeeDatamodel.Employee) error
}

type Service struct {
	repo         Repository
	logger       *slog.Logger
	queryTimeout time.Duration
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// WithQueryTimeout overrides the per call repository deadline.
func (s *Service) WithQueryTimeout(d time.Duration) *Service {
	s.queryTimeout = d
	return s
}

func (s *Service) ListEmployees(ctx context.Context, q ListQuery) (*EmployeePage, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	// without paging every row is on the first and only page
	page := q.Page
	if page < 1 || q.PerPage <= 0 {
		page = 1
	}

	s.logger.Debug("listed employees", "count", len(rows), "total", total, "page", page, "per_page", q.PerPage)
	return &EmployeePage{
		Employees: FromDataModelSlice(rows),
		Total:     total,
		Page:      page,
		PerPage:   q.PerPage,
	}, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get employee", "employee_id", id, "error", err)
		return nil, internal.NewInternalError("failed to get employee", err)
	}
	if row == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}

func (s *Service) CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			s.logger.Warn("employee validation failed", "email", dto.Email, "error", appErr.GetDetailedMessage())
		}
		return nil, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to check email uniqueness", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	emp := NewEmployee(dto)
	row := ToDataModel(emp)
	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, internal.ErrDuplicateEmail) {
			return nil, internal.ErrDuplicateEmail
		}
		s.logger.Error("failed to create employee", "email", dto.Email, "error", err)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	created := FromDataModel(row)
	s.logger.Info("employee created", "employee_id", created.ID, "name", created.FullName(), "email", created.Email)
	return created, nil
}

// Seed validates the whole batch, then swaps the table contents for it in one transaction.
func (s *Service) Seed(ctx context.Context, dtos []CreateEmployeeDTO) (int, error) {
	seen := make(map[string]int, len(dtos))
	rows := make([]*employeeDatamodel.Employee, 0, len(dtos))

	for i, dto := range dtos {
		if err := dto.Validate(); err != nil {
			return 0, fmt.Errorf("seed record %d: %w", i+1, err)
		}
		key := strings.ToLower(dto.Email)
		if first, dup := seen[key]; dup {
			return 0, fmt.Errorf("seed record %d repeats email of record %d: %w", i+1, first, internal.ErrDuplicateEmail)
		}
		seen[key] = i + 1
		rows = append(rows, ToDataModel(NewEmployee(dto)))
	}

	if err := s.repo.ReplaceAll(ctx, rows); err != nil {
		if errors.Is(err, internal.ErrDuplicateEmail) {
			return 0, internal.ErrDuplicateEmail
		}
		s.logger.Error("failed to seed employees", "error", err)
		return 0, fmt.Errorf("failed to replace employees: %w", err)
	}

	s.logger.Info("employees seeded", "count", len(rows))
	return len(rows), nil
}
