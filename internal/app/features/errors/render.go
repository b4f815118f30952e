// internal/app/features/errors/render.go
package errors

import (
	"bytes"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
)

// pageBuffer holds a rendered page until the status is known. A failed
// WAFFLE render answers through http.Error, which lands in code.
type pageBuffer struct {
	header http.Header
	code   int
	body   bytes.Buffer
}

func (b *pageBuffer) Header() http.Header         { return b.header }
func (b *pageBuffer) Write(p []byte) (int, error) { return b.body.Write(p) }
func (b *pageBuffer) WriteHeader(code int)        { b.code = code }

// RenderPage renders the page template name with status. It returns false,
// having written nothing, when the template fails.
func RenderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) bool {
	buf := &pageBuffer{header: http.Header{}}
	templates.Render(buf, r, name, data)
	if buf.code != 0 {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.body.WriteTo(w)
	return true
}

// renderStatus is RenderPage with a plain-text 500 when the page can't render.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if !RenderPage(w, r, status, name, data) {
		http.Error(w, "Terjadi kesalahan saat menampilkan halaman.", http.StatusInternalServerError)
	}
}
