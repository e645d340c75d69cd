package filters

import (
	"context"
	"image"
	"image/color"
	"math"

	"instafilter/internal/models"

	"github.com/disintegration/imaging"
)

// Vignette darkens towards the corners; Intensity is the darkening at the corner
type Vignette struct{}

func NewVignette() *Vignette {
	return &Vignette{}
}

func (v *Vignette) Name() string {
	return "vignette"
}

func (v *Vignette) Apply(ctx context.Context, src image.Image, params models.Parameters) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	amount := clampUnit(params.Value(models.RoleIntensity, DefaultIntensity))
	dst := imaging.Clone(src)
	if amount == 0 {
		return dst, nil
	}

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	cx, cy := float64(w)/2, float64(h)/2
	maxDist := math.Hypot(cx, cy)
	if maxDist == 0 {
		return dst, nil
	}

	for y := 0; y < h; y++ {
		if y%64 == 0 {
			if err := checkContext(ctx); err != nil {
				return nil, err
			}
		}
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / maxDist
			factor := 1 - amount*d*d
			c := dst.NRGBAAt(x, y)
			dst.SetNRGBA(x, y, color.NRGBA{
				R: clamp255(float64(c.R) * factor),
				G: clamp255(float64(c.G) * factor),
				B: clamp255(float64(c.B) * factor),
				A: c.A,
			})
		}
	}

	return dst, nil
}
