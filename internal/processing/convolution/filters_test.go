package convolution

import (
	"context"
	"image"
	"image/color"
	"testing"

	"instafilter/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: 255})
		}
	}
	return img
}

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func rgbaAt(img image.Image, x, y int) [3]uint32 {
	r, g, b, _ := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	return [3]uint32{r >> 8, g >> 8, b >> 8}
}

func TestGaussianBlur_ZeroRadiusIsCopy(t *testing.T) {
	src := gradient(16, 12)

	out, err := NewGaussianBlur().Apply(context.Background(), src, models.Parameters{models.RoleRadius: 0})
	require.NoError(t, err)
	require.Equal(t, src.Bounds().Size(), out.Bounds().Size())

	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			assert.Equal(t, rgbaAt(src, x, y), rgbaAt(out, x, y))
		}
	}
}

func TestGaussianBlur_UniformImageUnchanged(t *testing.T) {
	c := color.RGBA{R: 40, G: 120, B: 200, A: 255}

	out, err := NewGaussianBlur().Apply(context.Background(), uniform(20, 20, c), models.Parameters{models.RoleRadius: 5})
	require.NoError(t, err)
	got := rgbaAt(out, 10, 10)
	assert.InDelta(t, 40, got[0], 1)
	assert.InDelta(t, 120, got[1], 1)
	assert.InDelta(t, 200, got[2], 1)
}

func TestEdges_UniformImageIsBlack(t *testing.T) {
	out, err := NewEdges().Apply(context.Background(), uniform(10, 10, color.RGBA{R: 200, G: 10, B: 10, A: 255}), models.Parameters{models.RoleIntensity: 1})
	require.NoError(t, err)
	assert.Equal(t, [3]uint32{0, 0, 0}, rgbaAt(out, 5, 5))
}

func TestEdges_ZeroIntensityIsBlack(t *testing.T) {
	out, err := NewEdges().Apply(context.Background(), gradient(10, 10), models.Parameters{models.RoleIntensity: 0})
	require.NoError(t, err)
	assert.Equal(t, [3]uint32{0, 0, 0}, rgbaAt(out, 5, 5))
}

func TestUnsharpMask_ZeroIntensityIsCopy(t *testing.T) {
	src := gradient(8, 8)

	out, err := NewUnsharpMask().Apply(context.Background(), src, models.Parameters{models.RoleIntensity: 0})
	require.NoError(t, err)
	assert.Equal(t, rgbaAt(src, 3, 4), rgbaAt(out, 3, 4))
}

func TestPixellate_BlocksAreUniform(t *testing.T) {
	src := gradient(10, 9)

	out, err := NewPixellate().Apply(context.Background(), src, models.Parameters{models.RoleScale: 4})
	require.NoError(t, err)
	require.Equal(t, src.Bounds().Size(), out.Bounds().Size())

	for y := 0; y < 9; y++ {
		for x := 0; x < 10; x++ {
			anchor := rgbaAt(out, x/4*4, y/4*4)
			assert.Equal(t, anchor, rgbaAt(out, x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestPixellate_ScaleBelowOneIsCopy(t *testing.T) {
	src := gradient(6, 6)

	out, err := NewPixellate().Apply(context.Background(), src, models.Parameters{models.RoleScale: 0.2})
	require.NoError(t, err)
	assert.Equal(t, rgbaAt(src, 5, 2), rgbaAt(out, 5, 2))
}

func TestChain_OffsetBounds(t *testing.T) {
	src := gradient(12, 12).SubImage(image.Rect(4, 4, 10, 9))

	out, err := NewGaussianBlur().Apply(context.Background(), src, models.Parameters{models.RoleRadius: 0})
	require.NoError(t, err)
	assert.Equal(t, image.Pt(6, 5), out.Bounds().Size())
	assert.Equal(t, rgbaAt(src, 0, 0), rgbaAt(out, 0, 0))
}

func TestChain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEdges().Apply(ctx, gradient(4, 4), models.Parameters{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestChain_EmptyImage(t *testing.T) {
	_, err := NewGaussianBlur().Apply(context.Background(), image.NewRGBA(image.Rectangle{}), models.Parameters{})
	require.Error(t, err)
}

func TestChain_KeepsTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 10, A: uint8(40 * (x % 3))})
		}
	}

	out, err := NewGaussianBlur().Apply(context.Background(), src, models.Parameters{models.RoleRadius: 0})
	require.NoError(t, err)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := src.NRGBAAt(x, y)
			got := color.NRGBAModel.Convert(out.At(x, y)).(color.NRGBA)
			assert.Equal(t, want.A, got.A, "alpha at (%d,%d)", x, y)
		}
	}

	half := color.NRGBAModel.Convert(out.At(1, 0)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 200, G: 40, B: 10, A: 40}, half)
}
