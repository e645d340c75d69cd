package conversion

import (
	"fmt"
	"image"
	"image/draw"

	"instafilter/internal/opencv/safe"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// ImageToMat converts a standard Go image to a 3-channel BGR Mat.
// Images whose bounds do not start at the origin are shifted first.
// The Mat carries no alpha: translucent pixels keep their straight color
// and RestoreAlpha puts the transparency back after processing.
func ImageToMat(img image.Image) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	if err := safe.ValidateDimensions(bounds.Dx(), bounds.Dy(), "image to Mat conversion"); err != nil {
		return nil, err
	}

	if !isOpaque(img) {
		img = flattenAlpha(img)
		bounds = img.Bounds()
	}

	if bounds.Min != (image.Point{}) {
		shifted := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(shifted, shifted.Bounds(), img, bounds.Min, draw.Src)
		img = shifted
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to Mat: %w", err)
	}

	return safe.Adopt(mat, "image")
}

// MatToImage converts a Mat back to a standard Go image
func MatToImage(src *safe.Mat) (image.Image, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	switch src.Channels() {
	case 1, 3, 4:
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	mat := src.GetMat()
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert Mat to image: %w", err)
	}

	return img, nil
}

// RestoreAlpha copies the alpha channel of src onto processed. Opaque sources
// and size-changing results are returned unchanged.
func RestoreAlpha(processed, src image.Image) image.Image {
	if processed == nil || src == nil || isOpaque(src) {
		return processed
	}
	if processed.Bounds().Size() != src.Bounds().Size() {
		return processed
	}

	out := imaging.Clone(processed)
	alpha := imaging.Clone(src)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = alpha.Pix[i]
	}
	return out
}

func isOpaque(img image.Image) bool {
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}

// flattenAlpha keeps the straight RGB of every pixel and drops its alpha
func flattenAlpha(img image.Image) *image.NRGBA {
	flat := imaging.Clone(img)
	for i := 3; i < len(flat.Pix); i += 4 {
		flat.Pix[i] = 0xff
	}
	return flat
}
