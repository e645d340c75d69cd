package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"time"

	"instafilter/internal/logger"
	"instafilter/internal/models"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SupportedExtensions lists the file types the picker offers
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// ImageService handles image decoding and encoding
type ImageService struct {
	logger logger.Logger
}

// NewImageService creates a new image service
func NewImageService(log logger.Logger) *ImageService {
	if log == nil {
		log = logger.NewNop()
	}
	return &ImageService{logger: log}
}

// Decode reads a complete image, honouring EXIF orientation
func (is *ImageService) Decode(ctx context.Context, reader io.Reader, name string) (*models.ImageData, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	startTime := time.Now()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Empty() {
		return nil, fmt.Errorf("failed to decode image: %s has no pixels", name)
	}

	imageData := models.NewImageData(uuid.NewString(), name, format, img)
	imageData.FileSize = int64(len(data))

	is.logger.Info("image_service", "image decoded", map[string]interface{}{
		"name":     name,
		"format":   format,
		"size":     fmt.Sprintf("%dx%d", imageData.Width, imageData.Height),
		"bytes":    humanize.Bytes(uint64(len(data))),
		"duration": time.Since(startTime).String(),
	})

	return imageData, nil
}

// Encode writes img as png or jpeg
func (is *ImageService) Encode(writer io.Writer, img image.Image, format string, quality int) error {
	if img == nil {
		return models.ErrNoImageLoaded
	}

	imgFormat, err := ParseSaveFormat(format)
	if err != nil {
		return err
	}

	if err := imaging.Encode(writer, img, imgFormat, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// ParseSaveFormat maps a configured format onto an encoder
func ParseSaveFormat(format string) (imaging.Format, error) {
	switch strings.ToLower(format) {
	case "", "png":
		return imaging.PNG, nil
	case "jpeg", "jpg":
		return imaging.JPEG, nil
	default:
		return 0, fmt.Errorf("unsupported save format %q", format)
	}
}

// IsSupportedFile reports whether a file name has a decodable extension
func IsSupportedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
