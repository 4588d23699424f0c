package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-records/internal/core/datamodel/employee"
)

const (
	StatusActive      = "Active"
	StatusOutOfOffice = "Out of Office"

	DateLayout = "2006-01-02"
)

type Employee struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	HireDate  time.Time `json:"hire_date"`
	Active    bool      `json:"active"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// StatusLabel is what the list page shows for the active flag.
func (e *Employee) StatusLabel() string {
	if e.Active {
		return StatusActive
	}
	return StatusOutOfOffice
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Age:       e.Age,
		HireDate:  e.HireDate.Format(DateLayout),
		Active:    e.Active,
		Status:    e.StatusLabel(),
	}
}

func NewEmployee(dto CreateEmployeeDTO) *Employee {
	return &Employee{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Age:       dto.Age,
		HireDate:  truncateToDate(dto.HireDate),
		Active:    dto.Active,
	}
}

// truncateToDate drops the clock so hire dates compare as calendar days.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Age:       e.Age,
		HireDate:  e.HireDate,
		Active:    e.Active,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Age:       e.Age,
		HireDate:  e.HireDate,
		Active:    e.Active,
	}
}

func FromDataModelSlice(employees []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(employees))
	for i, e := range employees {
		result[i] = FromDataModel(e)
	}
	return result
}

func ToResponses(employees []*Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		result[i] = e.ToResponse()
	}
	return result
}
