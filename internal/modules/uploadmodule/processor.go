package uploadmodule

import (
	"bytes"
	"fmt"
	"image"
	"net/http"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// acceptedTypes are the sniffed content types an upload may have
var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ImageProcessor normalises uploaded posters to bounded-width WebP
type ImageProcessor struct {
	maxWidth int
	quality  float32
}

// NewImageProcessor creates a processor. maxWidth <= 0 disables resizing.
func NewImageProcessor(maxWidth int, quality float32) *ImageProcessor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &ImageProcessor{maxWidth: maxWidth, quality: quality}
}

// IsImageMimeType reports whether mimeType is an accepted upload type
func (ip *ImageProcessor) IsImageMimeType(mimeType string) bool {
	return acceptedTypes[mimeType]
}

// Process decodes data, shrinks it to the maximum width and encodes it as
// WebP. It returns the encoded bytes and the resulting dimensions.
func (ip *ImageProcessor) Process(data []byte) ([]byte, image.Point, error) {
	mimeType := http.DetectContentType(data)
	if !ip.IsImageMimeType(mimeType) {
		return nil, image.Point{}, fmt.Errorf("unsupported image type %q", mimeType)
	}

	img, err := ip.decodeImage(data, mimeType)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("failed to decode image: %w", err)
	}

	if ip.maxWidth > 0 && img.Bounds().Dx() > ip.maxWidth {
		img = imaging.Resize(img, ip.maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: ip.quality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), img.Bounds().Size(), nil
}

func (ip *ImageProcessor) decodeImage(data []byte, mimeType string) (image.Image, error) {
	reader := bytes.NewReader(data)
	if mimeType == "image/webp" {
		return webp.Decode(reader)
	}
	return imaging.Decode(reader, imaging.AutoOrientation(true))
}
