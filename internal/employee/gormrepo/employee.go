package gormrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/employee-records/db"
	"github.com/frahmantamala/employee-records/internal"
	employeeDatamodel "github.com/frahmantamala/employee-records/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-records/internal/employee"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const tableName = "employee"

// EmployeeRepository implements the employee.Repository interface using GORM.
// Queries stay within what both the sqlite and postgres dialects accept.
// On sqlite the connection must come from db.SQLite so UnicodeLower exists.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) isSQLite() bool {
	return r.db.Dialector.Name() == "sqlite"
}

// lower wraps column in a case fold that agrees with strings.ToLower.
func (r *EmployeeRepository) lower(column string) string {
	if r.isSQLite() {
		return db.UnicodeLower + "(" + column + ")"
	}
	return "LOWER(" + column + ")"
}

func (r *EmployeeRepository) filtered(ctx context.Context, q employee.ListQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{})

	if q.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		tx = tx.Where(
			r.lower("firstname")+` LIKE ? ESCAPE '\' OR `+
				r.lower("lastname")+` LIKE ? ESCAPE '\' OR `+
				r.lower("email")+` LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}
	if q.Active != nil {
		tx = tx.Where("active = ?", *q.Active)
	}
	return tx
}

// List returns the requested page and the number of rows matching the filters.
func (r *EmployeeRepository) List(ctx context.Context, q employee.ListQuery) ([]*employeeDatamodel.Employee, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx := r.filtered(ctx, q).Order(clause.OrderByColumn{
		Column: clause.Column{Name: q.SortColumn()},
		Desc:   q.Desc,
	})
	if q.SortColumn() != "id" {
		tx = tx.Order("id ASC")
	}
	if q.PerPage > 0 {
		tx = tx.Limit(q.PerPage).Offset(q.Offset())
	}

	var employees []*employeeDatamodel.Employee
	if err := tx.Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// GetByEmail matches case-insensitively.
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where(r.lower("email")+" = ?", strings.ToLower(email)).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{}).Count(&n).Error
	return n, err
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	return translate(r.db.WithContext(ctx).Create(e).Error)
}

// ReplaceAll empties the table, restarts id numbering at 1 and inserts employees,
// all in a single transaction.
func (r *EmployeeRepository) ReplaceAll(ctx context.Context, employees []*employeeDatamodel.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.truncate(tx); err != nil {
			return err
		}
		if len(employees) == 0 {
			return nil
		}
		return translate(tx.Create(&employees).Error)
	})
}

func (r *EmployeeRepository) truncate(tx *gorm.DB) error {
	if !r.isSQLite() {
		return tx.Exec("TRUNCATE TABLE " + tableName + " RESTART IDENTITY").Error
	}

	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&employeeDatamodel.Employee{}).Error; err != nil {
		return err
	}
	// sqlite_sequence only exists once some AUTOINCREMENT table has been created
	if !tx.Migrator().HasTable("sqlite_sequence") {
		return nil
	}
	return tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", tableName).Error
}

// translate maps a unique violation to ErrDuplicateEmail; email is the only unique column besides id.
// It relies on gorm.Config.TranslateError being set by the caller that opened the connection.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrDuplicateEmail.WithCause(err)
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
