package services

import (
	"context"
	"fmt"
	"image"
	"time"

	"instafilter/internal/logger"
	"instafilter/internal/models"
	"instafilter/internal/opencv/memory"
	"instafilter/internal/processing/convolution"
	"instafilter/internal/processing/filters"
)

// ProcessingService is the rendering engine: it runs a catalog filter over a raster
type ProcessingService struct {
	filters map[models.FilterKind]filters.Filter
	memory  *memory.Manager
	logger  logger.Logger
}

// DefaultFilters returns the implementation of every catalog filter.
// OpenCV backed filters account their Mats against mem when it is not nil.
func DefaultFilters(mem *memory.Manager) map[models.FilterKind]filters.Filter {
	return map[models.FilterKind]filters.Filter{
		models.FilterCrystallize:        filters.NewCrystallize(),
		models.FilterEdges:              convolution.NewEdges().WithMemory(mem),
		models.FilterGaussianBlur:       convolution.NewGaussianBlur().WithMemory(mem),
		models.FilterPixellate:          convolution.NewPixellate().WithMemory(mem),
		models.FilterSepiaTone:          filters.NewSepiaTone(),
		models.FilterUnsharpMask:        convolution.NewUnsharpMask().WithMemory(mem),
		models.FilterVignette:           filters.NewVignette(),
		models.FilterPointillize:        filters.NewPointillize(),
		models.FilterCircularWrap:       filters.NewCircularWrap(),
		models.FilterPhotoEffectInstant: filters.NewPhotoEffectInstant(),
	}
}

// NewProcessingService creates a rendering engine backed by DefaultFilters
func NewProcessingService(log logger.Logger, mem *memory.Manager) *ProcessingService {
	ps := NewProcessingServiceWithFilters(log, DefaultFilters(mem))
	ps.memory = mem
	return ps
}

// NewProcessingServiceWithFilters creates a rendering engine over a custom filter table
func NewProcessingServiceWithFilters(log logger.Logger, table map[models.FilterKind]filters.Filter) *ProcessingService {
	if log == nil {
		log = logger.NewNop()
	}
	return &ProcessingService{
		filters: table,
		logger:  log,
	}
}

// Supports reports whether kind has an implementation
func (ps *ProcessingService) Supports(kind models.FilterKind) bool {
	_, ok := ps.filters[kind]
	return ok
}

// Render applies kind with params to src.
// It returns models.ErrEmptyRenderResult when there is nothing to show.
func (ps *ProcessingService) Render(ctx context.Context, kind models.FilterKind, params models.Parameters, src image.Image) (image.Image, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, models.ErrEmptyRenderResult
	}

	filter, ok := ps.filters[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownFilter, kind)
	}

	startTime := time.Now()
	output, err := filter.Apply(ctx, src, params)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", filter.Name(), err)
	}

	if output == nil || output.Bounds().Empty() {
		return nil, models.ErrEmptyRenderResult
	}

	ps.logger.Debug("processing", "filter applied", map[string]interface{}{
		"filter":   kind.String(),
		"params":   describeParameters(params),
		"size":     fmt.Sprintf("%dx%d", output.Bounds().Dx(), output.Bounds().Dy()),
		"duration": time.Since(startTime).String(),
	})

	return output, nil
}

func describeParameters(params models.Parameters) map[string]float64 {
	described := make(map[string]float64, len(params))
	for role, value := range params {
		described[role.String()] = value
	}
	return described
}

// MemoryStats reports OpenCV allocations, or zero stats without a manager
func (ps *ProcessingService) MemoryStats() memory.Stats {
	if ps.memory == nil {
		return memory.Stats{}
	}
	return ps.memory.GetStats()
}

// Shutdown closes any Mat a cancelled render left behind
func (ps *ProcessingService) Shutdown() {
	if ps.memory == nil {
		return
	}
	if leaked := ps.memory.Cleanup(); leaked > 0 {
		ps.logger.Warning("processing", "closed leaked Mats", map[string]interface{}{
			"count": leaked,
		})
	}
}
