package filters

import (
	"context"
	"image"
	"image/color"
	"math"

	"instafilter/internal/models"

	"github.com/disintegration/imaging"
)

// CircularWrap bends the source around a ring whose inner edge has Radius.
// The ring is as thick as half the shorter side; pixels off the ring stay transparent.
type CircularWrap struct{}

func NewCircularWrap() *CircularWrap {
	return &CircularWrap{}
}

func (c *CircularWrap) Name() string {
	return "circular_wrap"
}

func (c *CircularWrap) Apply(ctx context.Context, src image.Image, params models.Parameters) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	inner := math.Max(0, params.Value(models.RoleRadius, DefaultRadius))
	source := imaging.Clone(src)
	w, h := source.Bounds().Dx(), source.Bounds().Dy()
	dst := imaging.New(w, h, color.Transparent)

	thickness := math.Max(1, float64(min(w, h))/2)
	outer := inner + thickness
	cx, cy := float64(w)/2, float64(h)/2

	for y := 0; y < h; y++ {
		if y%32 == 0 {
			if err := checkContext(ctx); err != nil {
				return nil, err
			}
		}
		for x := 0; x < w; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			dist := math.Hypot(dx, dy)
			if dist < inner || dist >= outer {
				continue
			}

			angle := math.Atan2(dy, dx) + math.Pi
			sx := angle / (2 * math.Pi) * float64(w)
			sy := (outer - dist) / thickness * float64(h)
			dst.SetNRGBA(x, y, sampleClamped(source, sx, sy))
		}
	}

	return dst, nil
}
