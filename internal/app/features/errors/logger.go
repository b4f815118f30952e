// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure and answers the request in one call.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &ErrorLogger{log: log}
}

func (e *ErrorLogger) fields(r *http.Request, err error, extra []zap.Field) []zap.Field {
	f := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		f = append(f, zap.String("request_id", id))
	}
	if u, ok := auth.CurrentUser(r); ok {
		f = append(f, zap.String("user_id", u.ID), zap.String("role", u.Role))
	}
	if err != nil {
		f = append(f, zap.Error(err))
	}
	return append(f, extra...)
}

// LogServerError logs at error level and responds 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string, extra ...zap.Field) {
	e.log.Error(logMsg, e.fields(r, err, extra)...)
	Respond(w, r, http.StatusInternalServerError, userMsg, backURL)
}

// LogBadRequest logs at warn level and responds 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string, extra ...zap.Field) {
	e.log.Warn(logMsg, e.fields(r, err, extra)...)
	Respond(w, r, http.StatusBadRequest, userMsg, backURL)
}

// LogStatus logs at info level and responds with an arbitrary status, for
// expected outcomes such as 403, 404 and 409.
func (e *ErrorLogger) LogStatus(w http.ResponseWriter, r *http.Request, status int, logMsg string, err error, userMsg string, extra ...zap.Field) {
	e.log.Info(logMsg, e.fields(r, err, extra)...)
	Respond(w, r, status, userMsg, "")
}
