package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"instafilter/internal/logger"
	"instafilter/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// PhotoLibrary is the persistence sink: a directory of saved edits
type PhotoLibrary struct {
	dir     string
	format  string
	quality int
	images  *ImageService
	logger  logger.Logger
}

// SavedPhoto describes a file written to the library
type SavedPhoto struct {
	Path string
	Size int64
}

// HumanSize formats the file size for status messages
func (s SavedPhoto) HumanSize() string {
	return humanize.Bytes(uint64(s.Size))
}

// NewPhotoLibrary creates a library writing format ("png" or "jpeg") files into dir
func NewPhotoLibrary(dir, format string, quality int, images *ImageService, log logger.Logger) *PhotoLibrary {
	if log == nil {
		log = logger.NewNop()
	}
	if format == "jpg" {
		format = "jpeg"
	}
	return &PhotoLibrary{
		dir:     dir,
		format:  format,
		quality: quality,
		images:  images,
		logger:  log,
	}
}

// Dir returns the library directory
func (pl *PhotoLibrary) Dir() string {
	return pl.dir
}

// Save encodes img into a new uniquely named file.
// Every failure is reported as *models.SaveError.
func (pl *PhotoLibrary) Save(ctx context.Context, img image.Image) (SavedPhoto, error) {
	select {
	case <-ctx.Done():
		return SavedPhoto{}, pl.fail("save cancelled", ctx.Err())
	default:
	}

	if img == nil {
		return SavedPhoto{}, pl.fail("there is no image to save", models.ErrNoImageLoaded)
	}

	var buf bytes.Buffer
	if err := pl.images.Encode(&buf, img, pl.format, pl.quality); err != nil {
		return SavedPhoto{}, pl.fail("could not encode the image", err)
	}

	if err := os.MkdirAll(pl.dir, 0o755); err != nil {
		return SavedPhoto{}, pl.fail("could not open the photo library", err)
	}

	path := filepath.Join(pl.dir, fmt.Sprintf("instafilter-%s.%s", uuid.NewString(), pl.extension()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return SavedPhoto{}, pl.fail("could not write to the photo library", err)
	}

	saved := SavedPhoto{Path: path, Size: int64(buf.Len())}
	pl.logger.Info("library", "photo saved", map[string]interface{}{
		"path": path,
		"size": saved.HumanSize(),
	})

	return saved, nil
}

func (pl *PhotoLibrary) extension() string {
	if pl.format == "jpeg" {
		return "jpg"
	}
	return "png"
}

func (pl *PhotoLibrary) fail(reason string, err error) error {
	saveErr := &models.SaveError{Reason: fmt.Sprintf("%s: %v", reason, err), Err: err}
	pl.logger.Error("library", saveErr, map[string]interface{}{"dir": pl.dir})
	return saveErr
}
