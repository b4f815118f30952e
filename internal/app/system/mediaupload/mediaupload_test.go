package mediaupload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/dalemusser/ekskulhub/internal/app/system/cloudinary"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

type fakeSink struct {
	uploads []cloudinary.Upload
	failAt  int // 1-based; 0 never fails
}

func (f *fakeSink) Upload(ctx context.Context, u cloudinary.Upload, onSent func(int64)) (*cloudinary.UploadResult, error) {
	f.uploads = append(f.uploads, u)
	if f.failAt == len(f.uploads) {
		return nil, errors.New("boom")
	}
	data, _ := io.ReadAll(u.Body)
	half := int64(len(data) / 2)
	if onSent != nil {
		onSent(half)
		onSent(int64(len(data)))
	}
	return &cloudinary.UploadResult{
		SecureURL: "https://cdn.example/" + u.Filename,
		PublicID:  u.PublicID,
		Bytes:     int64(len(data)),
	}, nil
}

func TestUploadBatch_OrderAndProgress(t *testing.T) {
	sink := &fakeSink{}
	svc := New(sink, 0, zap.NewNop())

	var updates []int
	res, err := svc.UploadBatch(context.Background(), []File{
		{Name: "a.txt", Data: []byte("aaaa")},
		{Name: "b.txt", Data: []byte("bbbbbbbb")},
		{Name: "c.txt", Data: []byte("cccc")},
	}, "robotik", func(p int) { updates = append(updates, p) })
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}

	urls := res.URLs()
	want := []string{"https://cdn.example/a.txt", "https://cdn.example/b.txt", "https://cdn.example/c.txt"}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("url[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
	if res.Progress != 100 {
		t.Errorf("final progress = %d, want 100", res.Progress)
	}
	for i := 1; i < len(updates); i++ {
		if updates[i] < updates[i-1] {
			t.Fatalf("progress went backwards: %v", updates)
		}
	}
	if updates[len(updates)-1] != 100 {
		t.Errorf("last update = %d, want 100", updates[len(updates)-1])
	}
	for _, u := range sink.uploads {
		if u.Folder != "robotik" {
			t.Errorf("folder = %q, want robotik", u.Folder)
		}
		if u.ResourceType != "auto" {
			t.Errorf("resource type for text file = %q, want auto", u.ResourceType)
		}
	}
}

func TestUploadBatch_FirstFailureAborts(t *testing.T) {
	sink := &fakeSink{failAt: 2}
	svc := New(sink, 0, zap.NewNop())

	res, err := svc.UploadBatch(context.Background(), []File{
		{Name: "a.jpg", Data: []byte("x")},
		{Name: "b.jpg", Data: []byte("y")},
		{Name: "c.jpg", Data: []byte("z")},
	}, "", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if res != nil {
		t.Errorf("expected no partial result, got %+v", res)
	}
	if len(sink.uploads) != 2 {
		t.Errorf("uploads attempted = %d, want 2", len(sink.uploads))
	}
}

func TestUploadBatch_Empty(t *testing.T) {
	svc := New(&fakeSink{}, 0, nil)
	if _, err := svc.UploadBatch(context.Background(), nil, "", nil); !errors.Is(err, ErrNoFiles) {
		t.Errorf("err = %v, want ErrNoFiles", err)
	}
}

func TestUploadBatch_ZeroByteFilesReport100(t *testing.T) {
	svc := New(&fakeSink{}, 0, nil)
	res, err := svc.UploadBatch(context.Background(), []File{{Name: "empty.txt"}}, "", nil)
	if err != nil {
		t.Fatalf("UploadBatch: %v", err)
	}
	if res.Progress != 100 {
		t.Errorf("progress = %d, want 100", res.Progress)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, image.White.C)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestDownscale(t *testing.T) {
	big := pngBytes(t, 400, 200)

	out, err := Downscale("foto.png", big, 100)
	if err != nil {
		t.Fatalf("Downscale: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("resized to %dx%d, want 100x50", b.Dx(), b.Dy())
	}

	small := pngBytes(t, 50, 50)
	if out, _ := Downscale("foto.png", small, 100); !bytes.Equal(out, small) {
		t.Error("small image should pass through unchanged")
	}

	doc := []byte("%PDF-1.4")
	if out, _ := Downscale("proposal.pdf", doc, 100); !bytes.Equal(out, doc) {
		t.Error("non-image should pass through unchanged")
	}
}

func TestPublicID(t *testing.T) {
	id := publicID("Foto Lomba #1.JPG")
	if !strings.HasPrefix(id, "foto-lomba--1-") {
		t.Errorf("publicID = %q", id)
	}
	if id := publicID("???.png"); len(id) != 8 {
		t.Errorf("publicID for symbol-only name = %q, want bare uuid prefix", id)
	}
}
