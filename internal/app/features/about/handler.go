// internal/app/features/about/handler.go
package about

import (
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type pageData struct {
	viewdata.BaseVM
	Mission []string
}

var mission = []string{
	"Menyalurkan minat dan bakat siswa di luar jam pelajaran.",
	"Menumbuhkan kedisiplinan, kerja sama, dan kepemimpinan.",
	"Mengharumkan nama sekolah melalui prestasi di berbagai tingkat.",
}

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Tentang Kami"),
		Mission: mission,
	}

	templates.Render(w, r, "about", data)
}
