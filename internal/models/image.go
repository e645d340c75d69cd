package models

import (
	"image"
	"sync"
	"time"
)

// ImageData represents a decoded raster with its metadata
type ImageData struct {
	ID       string
	Name     string
	Image    image.Image
	Width    int
	Height   int
	Format   string
	FileSize int64
	LoadTime time.Time
}

// NewImageData wraps a raster, deriving its dimensions from the bounds
func NewImageData(id, name, format string, img image.Image) *ImageData {
	data := &ImageData{
		ID:       id,
		Name:     name,
		Image:    img,
		Format:   format,
		LoadTime: time.Now(),
	}
	if img != nil {
		bounds := img.Bounds()
		data.Width = bounds.Dx()
		data.Height = bounds.Dy()
	}
	return data
}

// RenderResult is the output of one successful filter application
type RenderResult struct {
	Image      image.Image
	Filter     FilterKind
	Parameters Parameters
	RenderTime time.Duration
	RenderedAt time.Time
}

// ImageRepository owns the source raster and the single current-output slot
type ImageRepository struct {
	mu          sync.RWMutex
	source      *ImageData
	output      *RenderResult
	renderCount int
}

// NewImageRepository creates an empty repository
func NewImageRepository() *ImageRepository {
	return &ImageRepository{}
}

// SetSource replaces the source image and drops the output derived from the old one
func (r *ImageRepository) SetSource(img *ImageData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.source = img
	r.output = nil
}

// Source returns the current source image, or nil
func (r *ImageRepository) Source() *ImageData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}

// SetOutput overwrites the output slot
func (r *ImageRepository) SetOutput(result *RenderResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.output = result
	r.renderCount++
}

// Output returns the current output, or nil
func (r *ImageRepository) Output() *RenderResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.output
}

// OutputImage returns the current output raster, or nil
func (r *ImageRepository) OutputImage() image.Image {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.output == nil {
		return nil
	}
	return r.output.Image
}

// HasOutput reports whether a raster is available for preview and save
func (r *ImageRepository) HasOutput() bool {
	return r.OutputImage() != nil
}

// Clear ends the editing session
func (r *ImageRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.source = nil
	r.output = nil
}

// Stats returns statistics about the stored images
func (r *ImageRepository) Stats() ImageStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := ImageStats{
		HasSource:   r.source != nil,
		HasOutput:   r.output != nil && r.output.Image != nil,
		RenderCount: r.renderCount,
	}
	if r.source != nil {
		stats.SourcePixels = int64(r.source.Width) * int64(r.source.Height)
	}
	if r.output != nil {
		stats.LastRenderTime = r.output.RenderTime
	}
	return stats
}

// ImageStats contains statistics about the image repository
type ImageStats struct {
	HasSource      bool
	HasOutput      bool
	SourcePixels   int64
	RenderCount    int
	LastRenderTime time.Duration
}
