package employee

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/employee-records/internal"
	"github.com/frahmantamala/employee-records/internal/transport"
	"github.com/frahmantamala/employee-records/pkg/logger"
	"github.com/go-chi/chi"
)

const (
	IndexTemplate = "index"
	ExportPath    = "/api/v1/employees/export.xlsx"
)

type ServiceAPI interface {
	ListEmployees(ctx context.Context, q ListQuery) (*EmployeePage, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	View    transport.Renderer
	Title   string
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, view transport.Renderer, title string) *Handler {
	if title == "" {
		title = "Employee Records"
	}
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		View:        view,
		Title:       title,
	}
}

// IndexPage is the data handed to the index template.
type IndexPage struct {
	Title      string
	Employees  []EmployeeResponse
	Total      int64
	Page       int
	TotalPages int
	Query      ListQuery
	PrevURL    string
	NextURL    string
}

// SortURL links a column header, flipping the order when the column is already sorted ascending.
func (p IndexPage) SortURL(column string) string {
	q := p.Query
	q.Desc = q.SortBy == column && !q.Desc
	q.SortBy = column
	return "/?" + q.Encode(1)
}

// ExportURL downloads every row matching the current filters, not just the shown page.
func (p IndexPage) ExportURL() string {
	q := p.Query
	q.PerPage = 0
	if encoded := q.Encode(1); encoded != "" {
		return ExportPath + "?" + encoded
	}
	return ExportPath
}

func (p IndexPage) ActiveFilter(value string) bool {
	if p.Query.Active == nil {
		return false
	}
	return strconv.FormatBool(*p.Query.Active) == value
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	lg := logger.From(r.Context())

	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		lg.Warn("Index: invalid query", "error", err)
		h.WriteTextError(w, err)
		return
	}

	page, err := h.Service.ListEmployees(r.Context(), q)
	if err != nil {
		lg.Error("Index: failed to list employees", "error", err)
		h.WriteTextError(w, err)
		return
	}

	data := IndexPage{
		Title:      h.Title,
		Employees:  ToResponses(page.Employees),
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages(),
		Query:      q,
	}
	if q.PerPage > 0 {
		if page.HasPrev() {
			data.PrevURL = "/?" + q.Encode(page.Page-1)
		}
		if page.HasNext() {
			data.NextURL = "/?" + q.Encode(page.Page+1)
		}
	}

	h.WriteHTML(w, http.StatusOK, h.View, IndexTemplate, data)
}

// ListEmployees handles GET /api/v1/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	page, err := h.Service.ListEmployees(r.Context(), q)
	if err != nil {
		logger.From(r.Context()).Error("ListEmployees: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, page.ToResponse())
}

// GetEmployee handles GET /api/v1/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.WriteAppError(w, internal.NewValidationFieldError("id", "id must be a positive integer", internal.ErrCodeInvalidQuery))
		return
	}

	emp, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		logger.From(r.Context()).Warn("GetEmployee: service error", "employee_id", id, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp.ToResponse())
}

// ExportEmployees handles GET /api/v1/employees/export.xlsx
func (h *Handler) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	lg := logger.From(r.Context())

	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	page, err := h.Service.ListEmployees(r.Context(), q)
	if err != nil {
		lg.Error("ExportEmployees: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, page.Employees); err != nil {
		lg.Error("ExportEmployees: failed to build workbook", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to export employees")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		lg.Error("ExportEmployees: failed to write response", "error", err)
	}
}
