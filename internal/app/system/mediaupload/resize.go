// internal/app/system/mediaupload/resize.go
package mediaupload

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Downscale shrinks an image whose longer side exceeds maxDim so that it
// fits inside maxDim x maxDim, re-encoding in the original format. Files
// that are not decodable images, or already small enough, are returned
// unchanged. maxDim <= 0 disables resizing.
func Downscale(name string, data []byte, maxDim int) ([]byte, error) {
	if maxDim <= 0 || !isImageName(name) {
		return data, nil
	}
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return data, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, nil
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return data, nil
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func isImageName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}
