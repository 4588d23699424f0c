package employee

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/employee-records/internal"
	"github.com/frahmantamala/employee-records/internal/core/common/validation"
)

const (
	MaxNameLength  = 100
	MaxEmailLength = 120
	MinAge         = 16
	MaxAge         = 100
	MaxPerPage     = 100
)

// CreateEmployeeDTO represents the payload for creating an employee
type CreateEmployeeDTO struct {
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	HireDate  time.Time `json:"hire_date"`
	Active    bool      `json:"active"`
}

// Validate validates the CreateEmployeeDTO
func (dto CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("firstname", dto.FirstName).
		Required().
		MaxLength(MaxNameLength, internal.ErrCodeInvalidName)
	v.Field("lastname", dto.LastName).
		Required().
		MaxLength(MaxNameLength, internal.ErrCodeInvalidName)
	v.Field("email", dto.Email).
		Required().
		MaxLength(MaxEmailLength, internal.ErrCodeInvalidEmail).
		Email()
	v.Field("age", dto.Age).
		Required().
		MinInt(MinAge, internal.ErrCodeInvalidAge).
		MaxInt(MaxAge, internal.ErrCodeInvalidAge)
	v.Field("hire_date", dto.HireDate).
		Required().
		NotFuture(internal.ErrCodeInvalidHireDate)

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type EmployeeResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	HireDate  string `json:"hire_date"`
	Active    bool   `json:"active"`
	Status    string `json:"status"`
}

type EmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PerPage   int                `json:"per_page"`
}

// Sortable columns keyed by the query value.
var sortColumns = map[string]string{
	"id":        "id",
	"firstname": "firstname",
	"lastname":  "lastname",
	"email":     "email",
	"age":       "age",
	"hire_date": "hire_date",
	"active":    "active",
}

func SortKeys() []string {
	return []string{"id", "firstname", "lastname", "email", "age", "hire_date", "active"}
}

// ListQuery narrows and orders a listing. The zero value lists every employee by id.
type ListQuery struct {
	Search  string
	Active  *bool
	SortBy  string
	Desc    bool
	Page    int
	PerPage int
}

// SortColumn resolves SortBy against the whitelist.
func (q ListQuery) SortColumn() string {
	if col, ok := sortColumns[q.SortBy]; ok {
		return col
	}
	return "id"
}

func (q ListQuery) Offset() int {
	if q.PerPage <= 0 || q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// Encode renders the query back into url values, overriding the page.
func (q ListQuery) Encode(page int) string {
	values := url.Values{}
	if q.Search != "" {
		values.Set("q", q.Search)
	}
	if q.Active != nil {
		values.Set("active", strconv.FormatBool(*q.Active))
	}
	if q.SortBy != "" {
		values.Set("sort", q.SortBy)
	}
	if q.Desc {
		values.Set("order", "desc")
	}
	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
		values.Set("page", strconv.Itoa(page))
	}
	return values.Encode()
}

// ParseListQuery reads q, active, sort, order, page and per_page.
func ParseListQuery(values url.Values) (ListQuery, error) {
	var q ListQuery
	var fieldErrors []internal.ValidationError

	q.Search = strings.TrimSpace(values.Get("q"))

	if raw := values.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, queryError("active", "active must be true or false"))
		} else {
			q.Active = &active
		}
	}

	sort := values.Get("sort")
	order := strings.ToLower(values.Get("order"))
	v := validation.NewValidator()
	v.Field("sort", sort).OneOf(SortKeys(), internal.ErrCodeInvalidQuery)
	v.Field("order", order).OneOf([]string{"asc", "desc"}, internal.ErrCodeInvalidQuery)
	if appErr := v.Validate(); appErr != nil {
		if details, ok := appErr.Details.(internal.ValidationErrors); ok {
			fieldErrors = append(fieldErrors, details.Errors...)
		}
	} else {
		q.SortBy = sort
		q.Desc = order == "desc"
	}

	if raw := values.Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > MaxPerPage {
			fieldErrors = append(fieldErrors, queryError("per_page", "per_page must be between 0 and "+strconv.Itoa(MaxPerPage)))
		} else {
			q.PerPage = n
		}
	}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fieldErrors = append(fieldErrors, queryError("page", "page must be a positive integer"))
		} else {
			q.Page = n
		}
	}
	if q.Page == 0 {
		q.Page = 1
	}

	if len(fieldErrors) > 0 {
		return ListQuery{}, internal.NewValidationError("Invalid query parameters", internal.ErrCodeInvalidQuery).
			WithDetails(internal.ValidationErrors{Errors: fieldErrors})
	}
	return q, nil
}

func queryError(field, message string) internal.ValidationError {
	return internal.ValidationError{Field: field, Message: message, Code: string(internal.ErrCodeInvalidQuery)}
}

// EmployeePage is one slice of a listing plus the total match count.
type EmployeePage struct {
	Employees []*Employee
	Total     int64
	Page      int
	PerPage   int
}

func (p *EmployeePage) TotalPages() int {
	if p.PerPage <= 0 {
		return 1
	}
	pages := int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if pages == 0 {
		return 1
	}
	return pages
}

func (p *EmployeePage) HasPrev() bool {
	return p.Page > 1
}

func (p *EmployeePage) HasNext() bool {
	return p.Page < p.TotalPages()
}

func (p *EmployeePage) ToResponse() EmployeesResponse {
	return EmployeesResponse{
		Employees: ToResponses(p.Employees),
		Total:     p.Total,
		Page:      p.Page,
		PerPage:   p.PerPage,
	}
}
