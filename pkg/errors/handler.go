package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"supportportal/pkg/api"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorHandler turns errors into JSON error envelopes and logs their causes
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle writes the envelope for err. Validation and not-connected messages reach the
// caller; anything else is answered with fallback and status 500.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	message := fallback

	appErr := GetAppError(err)
	if appErr != nil && appErr.Exposed() {
		status = appErr.HTTPStatus
		message = appErr.Message
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	}
	if appErr != nil {
		fields = append(fields, zap.String("error_type", string(appErr.Type)))
		if appErr.Service != "" {
			fields = append(fields, zap.String("service", appErr.Service))
		}
	}

	if status >= 500 {
		h.logger.Error(message, fields...)
	} else {
		h.logger.Warn(message, fields...)
	}

	WriteError(w, status, message)
}

// Middleware recovers panics into a 500 envelope
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)), "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// WriteError sends {"error": message} with the given status
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}
