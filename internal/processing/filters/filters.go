package filters

import (
	"context"
	"image"
	"math"

	"instafilter/internal/models"
)

// Filter renders one built-in effect. Implementations never modify src.
type Filter interface {
	Name() string
	Apply(ctx context.Context, src image.Image, params models.Parameters) (image.Image, error)
}

const (
	DefaultIntensity = 1.0
	DefaultRadius    = 10.0
)

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func clamp255(v float64) uint8 {
	return uint8(math.Min(math.Max(v, 0), 255) + 0.5)
}

func clampUnit(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// hash2 gives a stable pseudo-random value in [0,1) for a grid cell
func hash2(x, y int) float64 {
	h := uint32(x)*0x9E3779B1 ^ uint32(y)*0x85EBCA77
	h ^= h >> 15
	h *= 0x2C1B3C6D
	h ^= h >> 12
	h *= 0x297A2D39
	h ^= h >> 15
	return float64(h) / (1 << 32)
}
