package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const MaxPhotoSize = 5 * 1024 * 1024

// Variant names for processed star photos.
const (
	VariantThumb  = "thumb"
	VariantMedium = "medium"
)

type ImageProcessor struct {
	MaxSize int64
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: MaxPhotoSize}
}

// ValidateImage checks size and decodes the header. It returns the format name
// ("jpeg", "png" or "gif").
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png", "gif":
		return format, nil
	default:
		return "", fmt.Errorf("image format %s not allowed", format)
	}
}

// Variants renders a square thumbnail (cropped to the centre) and a medium
// image fitted into 800x800, both as JPEG.
func (p *ImageProcessor) Variants(data []byte) (map[string][]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := map[string]image.Image{
		VariantThumb:  imaging.Fill(img, 300, 300, imaging.Center, imaging.Lanczos),
		VariantMedium: imaging.Fit(img, 800, 800, imaging.Lanczos),
	}

	out := make(map[string][]byte, len(resized))
	for name, im := range resized {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, im, &jpeg.Options{Quality: 88}); err != nil {
			return nil, fmt.Errorf("cannot encode %s: %w", name, err)
		}
		out[name] = buf.Bytes()
	}
	return out, nil
}

// ContentType maps a decoded format name to its MIME type.
func ContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}

// Extension maps a decoded format name to a file extension.
func Extension(format string) string {
	switch format {
	case "png":
		return "png"
	case "gif":
		return "gif"
	default:
		return "jpg"
	}
}
