// internal/app/system/mediaupload/mediaupload.go

// Package mediaupload prepares photos and sends them to the media host,
// singly or as a sequential batch with aggregated progress.
package mediaupload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/dalemusser/ekskulhub/internal/app/system/cloudinary"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoFiles is returned for an empty batch.
var ErrNoFiles = errors.New("mediaupload: no files")

// Sink is the media host. *cloudinary.Client satisfies it.
type Sink interface {
	Upload(ctx context.Context, u cloudinary.Upload, onSent func(int64)) (*cloudinary.UploadResult, error)
}

// File is one uploaded file held in memory.
type File struct {
	Name string
	Data []byte
}

// Service uploads files to a Sink.
type Service struct {
	Sink         Sink
	MaxDimension int
	Log          *zap.Logger
}

// New returns a Service.
func New(sink Sink, maxDim int, log *zap.Logger) *Service {
	return &Service{Sink: sink, MaxDimension: maxDim, Log: log}
}

// BatchResult is the outcome of a successful batch.
type BatchResult struct {
	Results  []*cloudinary.UploadResult
	Progress int
}

// URLs returns the secure URLs in input order.
func (b *BatchResult) URLs() []string {
	out := make([]string, 0, len(b.Results))
	for _, r := range b.Results {
		out = append(out, r.SecureURL)
	}
	return out
}

// UploadOne prepares and uploads a single file into folder.
func (s *Service) UploadOne(ctx context.Context, f File, folder string) (*cloudinary.UploadResult, error) {
	b, err := s.UploadBatch(ctx, []File{f}, folder, nil)
	if err != nil {
		return nil, err
	}
	return b.Results[0], nil
}

// UploadBatch uploads files one after another. onProgress receives the
// overall percentage as it rises. The first failure aborts the batch and
// nothing uploaded so far is returned.
func (s *Service) UploadBatch(ctx context.Context, files []File, folder string, onProgress func(int)) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	prepared := make([]File, len(files))
	var total int64
	for i, f := range files {
		data, err := Downscale(f.Name, f.Data, s.MaxDimension)
		if err != nil {
			return nil, err
		}
		prepared[i] = File{Name: f.Name, Data: data}
		total += int64(len(data))
	}

	prog := NewProgress(total, onProgress)
	results := make([]*cloudinary.UploadResult, 0, len(prepared))
	for i, f := range prepared {
		res, err := s.Sink.Upload(ctx, cloudinary.Upload{
			Body:         bytes.NewReader(f.Data),
			Filename:     f.Name,
			Folder:       folder,
			PublicID:     publicID(f.Name),
			ResourceType: resourceType(f.Name),
		}, prog.Sent)
		if err != nil {
			if s.Log != nil {
				s.Log.Warn("batch upload aborted",
					zap.Int("file_index", i),
					zap.String("file", f.Name),
					zap.Int("uploaded_before_failure", len(results)),
					zap.Error(err))
			}
			return nil, fmt.Errorf("upload %s: %w", f.Name, err)
		}
		prog.FileDone(int64(len(f.Data)))
		results = append(results, res)
	}
	prog.Complete()

	return &BatchResult{Results: results, Progress: prog.Percent()}, nil
}

func publicID(name string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, base)
	base = strings.Trim(base, "-")
	if len(base) > 40 {
		base = base[:40]
	}
	id := uuid.NewString()[:8]
	if base == "" {
		return id
	}
	return base + "-" + id
}

func resourceType(name string) string {
	if isImageName(name) {
		return "image"
	}
	return "auto"
}
