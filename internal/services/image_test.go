package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	data := encodePNG(t, solid(7, 5, color.RGBA{R: 10, G: 20, B: 30, A: 255}))

	img, err := NewImageService(nil).Decode(context.Background(), bytes.NewReader(data), "photo.png")
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
	assert.Equal(t, "photo.png", img.Name)
	assert.Equal(t, 7, img.Width)
	assert.Equal(t, 5, img.Height)
	assert.Equal(t, int64(len(data)), img.FileSize)
	assert.NotEmpty(t, img.ID)
}

func TestDecode_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, solid(3, 3, color.RGBA{B: 200, A: 255})))

	img, err := NewImageService(nil).Decode(context.Background(), &buf, "scan.bmp")
	require.NoError(t, err)
	assert.Equal(t, "bmp", img.Format)
	assert.Equal(t, 3, img.Width)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := NewImageService(nil).Decode(context.Background(), bytes.NewReader([]byte("not an image")), "notes.txt")
	require.Error(t, err)
}

func TestDecode_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewImageService(nil).Decode(ctx, bytes.NewReader(nil), "x.png")
	require.ErrorIs(t, err, context.Canceled)
}

func TestEncode_Formats(t *testing.T) {
	service := NewImageService(nil)
	src := solid(4, 4, color.RGBA{R: 255, A: 255})

	var pngBuf bytes.Buffer
	require.NoError(t, service.Encode(&pngBuf, src, "png", 90))
	_, format, err := image.DecodeConfig(&pngBuf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	var jpegBuf bytes.Buffer
	require.NoError(t, service.Encode(&jpegBuf, src, "jpeg", 90))
	_, format, err = image.DecodeConfig(&jpegBuf)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	assert.Error(t, service.Encode(&bytes.Buffer{}, src, "gif", 90))
	assert.Error(t, service.Encode(&bytes.Buffer{}, nil, "png", 90))
}

func TestParseSaveFormat(t *testing.T) {
	f, err := ParseSaveFormat("JPG")
	require.NoError(t, err)
	assert.Equal(t, imaging.JPEG, f)

	f, err = ParseSaveFormat("")
	require.NoError(t, err)
	assert.Equal(t, imaging.PNG, f)
}

func TestIsSupportedFile(t *testing.T) {
	assert.True(t, IsSupportedFile("holiday.JPG"))
	assert.True(t, IsSupportedFile("/tmp/a.webp"))
	assert.False(t, IsSupportedFile("notes.txt"))
}
