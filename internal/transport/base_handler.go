package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-records/internal"
	"github.com/frahmantamala/employee-records/pkg/logger"
)

// Renderer executes a named page template.
type Renderer interface {
	Render(w io.Writer, name string, data interface{}) error
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"code":    status,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}

// WriteAppError maps AppError values to their status and body, anything else to a 500.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("request failed", "code", appErr.Code, "error", appErr)
	}
	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// WriteTextError answers page routes in plain text: the AppError status with every
// field message, or a bare 500 for anything else.
func (h *BaseHandler) WriteTextError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok || appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("request failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Error(w, appErr.GetDetailedMessage(), appErr.StatusCode)
}

// WriteHTML renders into a buffer first so a template failure never leaves a half written page.
func (h *BaseHandler) WriteHTML(w http.ResponseWriter, status int, view Renderer, name string, data interface{}) {
	var buf bytes.Buffer
	if err := view.Render(&buf, name, data); err != nil {
		h.Logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("failed to write HTML response", "template", name, "error", err)
	}
}
