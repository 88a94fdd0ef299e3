package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageProcessor_ValidateImage(t *testing.T) {
	p := NewImageProcessor()

	format, err := p.ValidateImage(pngBytes(t, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = p.ValidateImage([]byte("definitely not an image"))
	assert.Error(t, err)

	small := &ImageProcessor{MaxSize: 10}
	_, err = small.ValidateImage(pngBytes(t, 10, 10))
	assert.Error(t, err)
}

func TestImageProcessor_Variants(t *testing.T) {
	p := NewImageProcessor()

	variants, err := p.Variants(pngBytes(t, 1600, 900))
	require.NoError(t, err)
	require.Contains(t, variants, VariantThumb)
	require.Contains(t, variants, VariantMedium)

	thumb, err := jpeg.DecodeConfig(bytes.NewReader(variants[VariantThumb]))
	require.NoError(t, err)
	assert.Equal(t, 300, thumb.Width)
	assert.Equal(t, 300, thumb.Height)

	medium, err := jpeg.DecodeConfig(bytes.NewReader(variants[VariantMedium]))
	require.NoError(t, err)
	assert.Equal(t, 800, medium.Width)
	assert.Equal(t, 450, medium.Height)
}

func TestContentTypeAndExtension(t *testing.T) {
	assert.Equal(t, "image/png", ContentType("png"))
	assert.Equal(t, "image/jpeg", ContentType("jpeg"))
	assert.Equal(t, "jpg", Extension("jpeg"))
	assert.Equal(t, "gif", Extension("gif"))
}
