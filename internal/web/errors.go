package web

// errors.go turns handler errors into JSON responses.
//
// The status code comes from the catalog error kind; the body comes from
// core.MapError so clients get a support code and a suggested action. The
// technical error is logged with the request id; only client errors echo it
// back in the response.

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/catalog/internal/catalog"
	"github.com/JonMunkholm/catalog/internal/core"
	"github.com/JonMunkholm/catalog/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, core.ErrTooManyImports) {
		return http.StatusTooManyRequests
	}
	switch catalog.Kind(err) {
	case catalog.ErrNotFound:
		return http.StatusNotFound
	case catalog.ErrInvalidArgument:
		return http.StatusBadRequest
	case catalog.ErrConcurrencyConflict, catalog.ErrConstraint:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped user message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	detail := userMsg.Message
	if status < http.StatusInternalServerError {
		detail = err.Error()
	}
	writeJSON(w, status, ErrorResponse{
		Error:   detail,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}
