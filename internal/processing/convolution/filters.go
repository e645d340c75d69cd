package convolution

import (
	"image"
	"math"

	"instafilter/internal/models"
	"instafilter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const (
	DefaultBlurRadius     = 10.0
	DefaultEdgeIntensity  = 1.0
	DefaultSharpenAmount  = 0.5
	DefaultPixellateScale = 8.0

	// EdgeGain multiplies the Sobel response before it is clamped to 8 bits
	EdgeGain = 2.0

	// UnsharpRadius is the fixed sigma of the mask blur
	UnsharpRadius = 2.5
)

// NewGaussianBlur blurs with sigma equal to the Radius parameter
func NewGaussianBlur() *Chain {
	return newChain("gaussian_blur", stepFunc{name: "gaussian", fn: gaussianStep})
}

// NewEdges renders colour edges from the Sobel gradient scaled by Intensity
func NewEdges() *Chain {
	return newChain("edges", stepFunc{name: "sobel", fn: sobelStep})
}

// NewUnsharpMask sharpens by Intensity against a fixed-radius blur
func NewUnsharpMask() *Chain {
	return newChain("unsharp_mask", stepFunc{name: "unsharp", fn: unsharpStep})
}

// NewPixellate replaces each Scale-sized block by its average colour
func NewPixellate() *Chain {
	return newChain("pixellate", stepFunc{name: "pixellate", fn: pixellateStep})
}

func gaussianStep(input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	sigma := params.Value(models.RoleRadius, DefaultBlurRadius)
	if sigma <= 0 {
		return input.Clone()
	}
	return blur(input, sigma, "gaussian")
}

func blur(input *safe.Mat, sigma float64, tag string) (*safe.Mat, error) {
	dst, err := input.NewLike(tag)
	if err != nil {
		return nil, err
	}

	gocv.GaussianBlur(input.GetMat(), dst.Ptr(), image.Point{}, sigma, sigma, gocv.BorderReplicate)
	return dst, nil
}

func sobelStep(input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	gain := params.Value(models.RoleIntensity, DefaultEdgeIntensity) * EdgeGain

	gradX := gocv.NewMat()
	defer gradX.Close()
	gradY := gocv.NewMat()
	defer gradY.Close()

	src := input.GetMat()
	gocv.Sobel(src, &gradX, gocv.MatTypeCV16S, 1, 0, 3, 1, 0, gocv.BorderReplicate)
	gocv.Sobel(src, &gradY, gocv.MatTypeCV16S, 0, 1, 3, 1, 0, gocv.BorderReplicate)

	absX := gocv.NewMat()
	defer absX.Close()
	absY := gocv.NewMat()
	defer absY.Close()

	gocv.ConvertScaleAbs(gradX, &absX, gain, 0)
	gocv.ConvertScaleAbs(gradY, &absY, gain, 0)

	dst, err := input.NewLike("edges")
	if err != nil {
		return nil, err
	}
	gocv.AddWeighted(absX, 0.5, absY, 0.5, 0, dst.Ptr())
	return dst, nil
}

func unsharpStep(input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	amount := params.Value(models.RoleIntensity, DefaultSharpenAmount)
	if amount <= 0 {
		return input.Clone()
	}

	blurred, err := blur(input, UnsharpRadius, "unsharp_blur")
	if err != nil {
		return nil, err
	}
	defer blurred.Close()

	dst, err := input.NewLike("unsharp")
	if err != nil {
		return nil, err
	}
	gocv.AddWeighted(input.GetMat(), 1+amount, blurred.GetMat(), -amount, 0, dst.Ptr())
	return dst, nil
}

// blockSize turns the Scale parameter into a whole block edge length
func blockSize(params models.Parameters) int {
	size := int(math.Round(params.Value(models.RoleScale, DefaultPixellateScale)))
	return max(1, size)
}

func pixellateStep(input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	block := blockSize(params)
	if block == 1 {
		return input.Clone()
	}

	cols, rows := input.Cols(), input.Rows()
	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(input.GetMat(), &small, image.Point{
		X: (cols + block - 1) / block,
		Y: (rows + block - 1) / block,
	}, 0, 0, gocv.InterpolationArea)

	large := gocv.NewMat()
	defer large.Close()
	gocv.Resize(small, &large, image.Point{X: small.Cols() * block, Y: small.Rows() * block}, 0, 0, gocv.InterpolationNearestNeighbor)

	// the upsampled grid overshoots when the size is not a multiple of block
	region := large.Region(image.Rect(0, 0, cols, rows))
	defer region.Close()
	return safe.Adopt(region.Clone(), "pixellate")
}
