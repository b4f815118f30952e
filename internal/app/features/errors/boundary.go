// internal/app/features/errors/boundary.go
package errors

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// FallbackMessage is shown when a handler panics.
const FallbackMessage = "Terjadi kesalahan pada panel admin."

// trackingWriter records whether the wrapped handler already started the
// response, in which case no fallback can be written.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (t *trackingWriter) WriteHeader(code int) {
	t.wrote = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *trackingWriter) Write(b []byte) (int, error) {
	t.wrote = true
	return t.ResponseWriter.Write(b)
}

func (t *trackingWriter) Unwrap() http.ResponseWriter { return t.ResponseWriter }

// Boundary recovers panics raised below it. The panic is logged with its
// stack and the caller gets a static fallback whose retry link points at the
// same URL: JSON {"error","retry"} for API callers, an HTML page otherwise.
func Boundary(log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &trackingWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("panic", fmt.Sprint(rec)),
					zap.Stack("stack"),
				)
				if tw.wrote {
					return
				}
				writeFallback(w, r)
			}()
			next.ServeHTTP(tw, r)
		})
	}
}

func writeFallback(w http.ResponseWriter, r *http.Request) {
	retry := r.URL.RequestURI()
	if apiutil.WantsJSON(r) {
		apiutil.WriteJSON(w, http.StatusInternalServerError, apiutil.ErrorBody{Error: FallbackMessage, Retry: retry})
		return
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Terjadi kesalahan"),
		Status:  http.StatusInternalServerError,
		Message: FallbackMessage,
		BackURL: "/",
		Retry:   retry,
	}
	if !RenderPage(w, r, http.StatusInternalServerError, "error_page", data) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `<p>%s</p><a href="%s">Coba lagi</a>`, FallbackMessage, templateEscape(retry))
	}
}
