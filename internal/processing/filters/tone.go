package filters

import (
	"context"
	"image"
	"image/color"

	"instafilter/internal/models"

	"github.com/disintegration/imaging"
)

// SepiaTone blends each pixel towards its sepia-matrix colour by Intensity
type SepiaTone struct{}

func NewSepiaTone() *SepiaTone {
	return &SepiaTone{}
}

func (s *SepiaTone) Name() string {
	return "sepia_tone"
}

func (s *SepiaTone) Apply(ctx context.Context, src image.Image, params models.Parameters) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	amount := clampUnit(params.Value(models.RoleIntensity, DefaultIntensity))

	fn := func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		sr := 0.393*r + 0.769*g + 0.189*b
		sg := 0.349*r + 0.686*g + 0.168*b
		sb := 0.272*r + 0.534*g + 0.131*b
		return color.NRGBA{
			R: clamp255(r + (sr-r)*amount),
			G: clamp255(g + (sg-g)*amount),
			B: clamp255(b + (sb-b)*amount),
			A: c.A,
		}
	}

	return imaging.AdjustFunc(src, fn), nil
}

// PhotoEffectInstant applies a fixed faded, warm print look
type PhotoEffectInstant struct {
	red, green, blue [256]uint8
}

func NewPhotoEffectInstant() *PhotoEffectInstant {
	f := &PhotoEffectInstant{}
	for i := 0; i < 256; i++ {
		v := float64(i)
		f.red[i] = clamp255(22 + v*0.90)
		f.green[i] = clamp255(14 + v*0.86)
		f.blue[i] = clamp255(8 + v*0.78)
	}
	return f
}

func (f *PhotoEffectInstant) Name() string {
	return "photo_effect_instant"
}

func (f *PhotoEffectInstant) Apply(ctx context.Context, src image.Image, params models.Parameters) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	fn := func(c color.NRGBA) color.NRGBA {
		// pull saturation down a little before the curves
		luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		r := clamp255(float64(c.R)*0.85 + luma*0.15)
		g := clamp255(float64(c.G)*0.85 + luma*0.15)
		b := clamp255(float64(c.B)*0.85 + luma*0.15)
		return color.NRGBA{R: f.red[r], G: f.green[g], B: f.blue[b], A: c.A}
	}

	return imaging.AdjustFunc(src, fn), nil
}
