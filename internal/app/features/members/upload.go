// internal/app/features/members/upload.go
package members

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/ekskulhub/internal/app/features/shared"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/csvutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"github.com/dalemusser/ekskulhub/internal/domain/models"
	"go.uber.org/zap"
)

type importResponse struct {
	Ekskul   string          `json:"ekskul"`
	Imported int             `json:"imported"`
	Items    []models.Member `json:"items"`
}

// Import handles POST /api/admin/members/import: multipart "file" holding a
// roster CSV (name,studentId,className,status,joinDate,phone) and "ekskul".
// Any invalid line rejects the whole file.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, csvutil.MaxUploadSize+1<<10)
	if err := r.ParseMultipartForm(csvutil.MaxUploadSize); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Berkas CSV tidak valid atau terlalu besar.")
		return
	}
	club, ok := shared.WriteClub(w, r, r.FormValue("ekskul"))
	if !ok {
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Berkas CSV wajib diunggah.")
		return
	}
	defer file.Close()

	res, err := csvutil.ParseRoster(file)
	if errors.Is(err, csvutil.ErrTooManyRows) {
		apiutil.WriteError(w, http.StatusBadRequest, "Jumlah baris melebihi batas.")
		return
	}
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "read roster failed", err, "Berkas CSV tidak dapat dibaca.", "")
		return
	}
	if res.HasErrors() {
		apiutil.WriteJSON(w, http.StatusBadRequest, apiutil.ErrorBody{Error: "Sebagian baris tidak valid.", Fields: res.Errors})
		return
	}
	if len(res.Rows) == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "Berkas CSV kosong.")
		return
	}

	batch := make([]models.Member, 0, len(res.Rows))
	for _, row := range res.Rows {
		in := memberInput{Name: row.Name, StudentID: row.StudentID, ClassName: row.ClassName, Status: row.Status, Phone: row.Phone}
		var m models.Member
		m.JoinDate = row.JoinDate
		in.apply(&m, club)
		batch = append(batch, m)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Members.CreateMany(ctx, batch)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "import members failed", err, "Gagal menyimpan anggota.", "", zap.String("ekskul", club))
		return
	}
	h.Log.Info("members imported", zap.String("ekskul", club), zap.Int("count", len(created)))
	apiutil.WriteJSON(w, http.StatusCreated, importResponse{Ekskul: club, Imported: len(created), Items: created})
}
