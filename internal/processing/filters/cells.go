package filters

import (
	"context"
	"image"
	"image/color"
	"math"

	"instafilter/internal/models"

	"github.com/disintegration/imaging"
)

// Crystallize fills Voronoi cells, seeded on a jittered grid of spacing Radius,
// with the source colour under each seed
type Crystallize struct{}

func NewCrystallize() *Crystallize {
	return &Crystallize{}
}

func (c *Crystallize) Name() string {
	return "crystallize"
}

func (c *Crystallize) Apply(ctx context.Context, src image.Image, params models.Parameters) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	spacing := math.Max(1, params.Value(models.RoleRadius, DefaultRadius))
	source := imaging.Clone(src)
	w, h := source.Bounds().Dx(), source.Bounds().Dy()
	dst := imaging.New(w, h, color.Transparent)

	seed := func(gx, gy int) (float64, float64) {
		return (float64(gx) + hash2(gx, gy)) * spacing, (float64(gy) + hash2(gy+7919, gx)) * spacing
	}

	for y := 0; y < h; y++ {
		if y%32 == 0 {
			if err := checkContext(ctx); err != nil {
				return nil, err
			}
		}
		gy := int(math.Floor(float64(y) / spacing))
		for x := 0; x < w; x++ {
			gx := int(math.Floor(float64(x) / spacing))

			bestDist := math.Inf(1)
			var bestX, bestY float64
			for ny := gy - 1; ny <= gy+1; ny++ {
				for nx := gx - 1; nx <= gx+1; nx++ {
					sx, sy := seed(nx, ny)
					dist := (sx-float64(x))*(sx-float64(x)) + (sy-float64(y))*(sy-float64(y))
					if dist < bestDist {
						bestDist, bestX, bestY = dist, sx, sy
					}
				}
			}

			dst.SetNRGBA(x, y, sampleClamped(source, bestX, bestY))
		}
	}

	return dst, nil
}

// Pointillize paints discs of Radius on a grid over a white canvas,
// each coloured by the source at its centre
type Pointillize struct{}

func NewPointillize() *Pointillize {
	return &Pointillize{}
}

func (p *Pointillize) Name() string {
	return "pointillize"
}

func (p *Pointillize) Apply(ctx context.Context, src image.Image, params models.Parameters) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	radius := params.Value(models.RoleRadius, DefaultRadius)
	source := imaging.Clone(src)
	if radius < 1 {
		return source, nil
	}

	w, h := source.Bounds().Dx(), source.Bounds().Dy()
	dst := imaging.New(w, h, color.White)
	cell := 2 * radius

	for y := 0; y < h; y++ {
		if y%32 == 0 {
			if err := checkContext(ctx); err != nil {
				return nil, err
			}
		}
		cy := (math.Floor(float64(y)/cell) + 0.5) * cell
		for x := 0; x < w; x++ {
			cx := (math.Floor(float64(x)/cell) + 0.5) * cell
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) > radius {
				continue
			}
			dst.SetNRGBA(x, y, sampleClamped(source, cx, cy))
		}
	}

	return dst, nil
}

func sampleClamped(img *image.NRGBA, x, y float64) color.NRGBA {
	bounds := img.Bounds()
	ix := min(max(int(x), bounds.Min.X), bounds.Max.X-1)
	iy := min(max(int(y), bounds.Min.Y), bounds.Max.Y-1)
	return img.NRGBAAt(ix, iy)
}
