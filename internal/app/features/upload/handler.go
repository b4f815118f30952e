// internal/app/features/upload/handler.go
package upload

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"

	uierrors "github.com/dalemusser/ekskulhub/internal/app/features/errors"
	"github.com/dalemusser/ekskulhub/internal/app/system/apiutil"
	"github.com/dalemusser/ekskulhub/internal/app/system/cloudinary"
	"github.com/dalemusser/ekskulhub/internal/app/system/mediaupload"
	"github.com/dalemusser/ekskulhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	// DefaultMaxBytes bounds one request body (all files together).
	DefaultMaxBytes = 50 << 20
	// MaxBatchFiles bounds the number of files in one batch.
	MaxBatchFiles = 30
	defaultFolder = "ekskul"
)

var folderPattern = regexp.MustCompile(`^[a-z0-9_-]+(/[a-z0-9_-]+)*$`)

// Handler proxies browser uploads to the media host.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Media    *mediaupload.Service
	MaxBytes int64
}

func NewHandler(media *mediaupload.Service, maxBytes int64, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Handler{Log: logger, ErrLog: errLog, Media: media, MaxBytes: maxBytes}
}

type batchResponse struct {
	URLs     []string                   `json:"urls"`
	Results  []*cloudinary.UploadResult `json:"results"`
	Progress int                        `json:"progress"`
}

// folderFrom reads the "folder" field. Empty means the default folder.
func folderFrom(r *http.Request) (string, bool) {
	f := strings.Trim(strings.ToLower(strings.TrimSpace(r.FormValue("folder"))), "/")
	if f == "" {
		return defaultFolder, true
	}
	return f, folderPattern.MatchString(f) && len(f) <= 120
}

// parse reads the multipart body and returns the "file" parts.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) ([]*multipart.FileHeader, string, bool) {
	if r.ContentLength > h.MaxBytes {
		apiutil.WriteError(w, http.StatusRequestEntityTooLarge, "Ukuran file terlalu besar.")
		return nil, "", false
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			apiutil.WriteError(w, http.StatusRequestEntityTooLarge, "Ukuran file terlalu besar.")
			return nil, "", false
		}
		apiutil.WriteError(w, http.StatusBadRequest, "Data unggahan tidak valid.")
		return nil, "", false
	}
	folder, ok := folderFrom(r)
	if !ok {
		apiutil.WriteError(w, http.StatusBadRequest, "Nama folder tidak valid.")
		return nil, "", false
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "Tidak ada file yang diunggah.")
		return nil, "", false
	}
	return files, folder, true
}

func readAll(fh *multipart.FileHeader) (mediaupload.File, error) {
	f, err := fh.Open()
	if err != nil {
		return mediaupload.File{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return mediaupload.File{}, err
	}
	return mediaupload.File{Name: fh.Filename, Data: data}, nil
}

// uploadFailed maps a media host failure to a response.
func (h *Handler) uploadFailed(w http.ResponseWriter, r *http.Request, err error, folder string) {
	var apiErr *cloudinary.APIError
	switch {
	case errors.Is(err, cloudinary.ErrNotConfigured):
		h.ErrLog.LogStatus(w, r, http.StatusServiceUnavailable, "media host not configured", err, "Layanan unggah belum dikonfigurasi.")
	case errors.As(err, &apiErr):
		h.ErrLog.LogStatus(w, r, http.StatusBadGateway, "media host rejected upload", err, "Unggahan ditolak: "+apiErr.Message,
			zap.Int("upstream_status", apiErr.Status), zap.String("folder", folder))
	default:
		h.ErrLog.LogStatus(w, r, http.StatusBadGateway, "media upload failed", err, "Gagal mengunggah file.", zap.String("folder", folder))
	}
}

// Upload handles POST /api/cloudinary/upload: one "file" part plus an
// optional "folder". The media host's result is returned as-is.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	files, folder, ok := h.parse(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, err := readAll(files[0])
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "read upload failed", err, "File tidak dapat dibaca.", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.Media.UploadOne(ctx, file, folder)
	if err != nil {
		h.uploadFailed(w, r, err, folder)
		return
	}
	h.Log.Info("file uploaded", zap.String("public_id", res.PublicID), zap.Int64("bytes", res.Bytes))
	apiutil.WriteJSON(w, http.StatusOK, res)
}

// Batch handles POST /api/cloudinary/upload/batch: several "file" parts sent
// one after another. The response lists URLs in the order the files were
// given; the first failure fails the whole batch.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	headers, folder, ok := h.parse(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()
	if len(headers) > MaxBatchFiles {
		apiutil.WriteError(w, http.StatusBadRequest, "Terlalu banyak file dalam satu unggahan.")
		return
	}

	files := make([]mediaupload.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readAll(fh)
		if err != nil {
			h.ErrLog.LogBadRequest(w, r, "read upload failed", err, "File tidak dapat dibaca.", "", zap.String("file", fh.Filename))
			return
		}
		files = append(files, f)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	progress := newProgressLog(h.Log, len(files))
	res, err := h.Media.UploadBatch(ctx, files, folder, progress.report)
	if err != nil {
		h.uploadFailed(w, r, err, folder)
		return
	}
	h.Log.Info("batch uploaded", zap.Int("files", len(files)), zap.String("folder", folder))
	apiutil.WriteJSON(w, http.StatusOK, batchResponse{
		URLs:     res.URLs(),
		Results:  res.Results,
		Progress: res.Progress,
	})
}
