package convolution

import (
	"context"
	"fmt"
	"image"

	"instafilter/internal/models"
	"instafilter/internal/opencv/conversion"
	"instafilter/internal/opencv/memory"
	"instafilter/internal/opencv/safe"
)

// step is one OpenCV operation inside a filter. It must not close its input.
type step interface {
	Name() string
	Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error)
}

type stepFunc struct {
	name string
	fn   func(input *safe.Mat, params models.Parameters) (*safe.Mat, error)
}

func (s stepFunc) Name() string {
	return s.name
}

func (s stepFunc) Apply(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.fn(input, params)
}

// Chain runs OpenCV steps in order, releasing every intermediate Mat
type Chain struct {
	name   string
	steps  []step
	memory *memory.Manager
}

func newChain(name string, steps ...step) *Chain {
	return &Chain{name: name, steps: steps}
}

func (c *Chain) Name() string {
	return c.name
}

// WithMemory accounts every Mat the chain allocates against mgr
func (c *Chain) WithMemory(mgr *memory.Manager) *Chain {
	c.memory = mgr
	return c
}

func (c *Chain) track(mat *safe.Mat) error {
	if c.memory == nil {
		return nil
	}
	return c.memory.Track(mat)
}

func (c *Chain) release(mat *safe.Mat) {
	if c.memory == nil {
		mat.Close()
		return
	}
	c.memory.Release(mat)
}

// Apply converts src to a Mat, runs the steps and converts the result back.
// Transparency in src is carried over to the result.
func (c *Chain) Apply(ctx context.Context, src image.Image, params models.Parameters) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	input, err := conversion.ImageToMat(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	if err := c.track(input); err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	defer c.release(input)

	result, err := c.execute(ctx, input, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	defer c.release(result)

	out, err := conversion.MatToImage(result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	return conversion.RestoreAlpha(out, src), nil
}

func (c *Chain) execute(ctx context.Context, input *safe.Mat, params models.Parameters) (*safe.Mat, error) {
	current := input
	needsCleanup := false

	for _, s := range c.steps {
		result, err := s.Apply(ctx, current, params)
		if needsCleanup {
			c.release(current)
		}
		if err != nil {
			return nil, fmt.Errorf("step %s failed: %w", s.Name(), err)
		}
		if err := c.track(result); err != nil {
			return nil, fmt.Errorf("step %s: %w", s.Name(), err)
		}

		current = result
		needsCleanup = true
	}

	if !needsCleanup {
		clone, err := input.Clone()
		if err != nil {
			return nil, err
		}
		if err := c.track(clone); err != nil {
			return nil, err
		}
		return clone, nil
	}
	return current, nil
}
