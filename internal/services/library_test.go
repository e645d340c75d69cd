package services

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"instafilter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoLibrary_SavePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "library")
	library := NewPhotoLibrary(dir, "png", 95, NewImageService(nil), nil)

	saved, err := library.Save(context.Background(), solid(6, 4, color.RGBA{G: 255, A: 255}))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(saved.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(saved.Path), "instafilter-"))
	assert.Equal(t, ".png", filepath.Ext(saved.Path))
	assert.NotEmpty(t, saved.HumanSize())

	file, err := os.Open(saved.Path)
	require.NoError(t, err)
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 6, cfg.Width)

	info, err := os.Stat(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), saved.Size)
}

func TestPhotoLibrary_SaveJPEGUniqueNames(t *testing.T) {
	library := NewPhotoLibrary(t.TempDir(), "jpg", 80, NewImageService(nil), nil)
	img := solid(2, 2, color.RGBA{A: 255})

	first, err := library.Save(context.Background(), img)
	require.NoError(t, err)
	second, err := library.Save(context.Background(), img)
	require.NoError(t, err)

	assert.Equal(t, ".jpg", filepath.Ext(first.Path))
	assert.NotEqual(t, first.Path, second.Path)
}

func TestPhotoLibrary_NilImage(t *testing.T) {
	library := NewPhotoLibrary(t.TempDir(), "png", 95, NewImageService(nil), nil)

	_, err := library.Save(context.Background(), nil)

	var saveErr *models.SaveError
	require.True(t, errors.As(err, &saveErr))
	assert.ErrorIs(t, err, models.ErrNoImageLoaded)
	assert.NotEmpty(t, saveErr.Reason)
}

func TestPhotoLibrary_UnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	library := NewPhotoLibrary(filepath.Join(blocker, "library"), "png", 95, NewImageService(nil), nil)
	_, err := library.Save(context.Background(), solid(1, 1, color.RGBA{A: 255}))

	var saveErr *models.SaveError
	require.True(t, errors.As(err, &saveErr))
	assert.Contains(t, saveErr.Reason, "photo library")
}
