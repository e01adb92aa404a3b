package scene

import (
	"fmt"

	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/shape"
)

// Canvas mirrors what the renderer has on screen, in draw order. The driver
// keeps it to check what each stage leaves behind.
type Canvas struct {
	shapes []shape.Shape
	on     map[shape.Shape]bool
}

func NewCanvas() *Canvas {
	return &Canvas{on: make(map[shape.Shape]bool)}
}

// Check reports the first instruction of b that would animate a shape that
// is neither on canvas nor introduced earlier in the same batch.
func (c *Canvas) Check(b anim.Batch) error {
	added := make(map[shape.Shape]bool)
	for _, in := range b.Instructions {
		if in.Kind == anim.Reorient {
			continue
		}
		if in.Target == nil {
			return fmt.Errorf("%s instruction without target", in.Kind)
		}
		if in.Kind.Appears() {
			added[in.Target] = true
			continue
		}
		if !c.on[in.Target] && !added[in.Target] {
			return fmt.Errorf("%s of %s: %w", in.Kind, in.Target.Name(), ErrNotOnCanvas)
		}
	}
	return nil
}

// Apply records the effect of a played batch
func (c *Canvas) Apply(b anim.Batch) error {
	if err := c.Check(b); err != nil {
		return err
	}
	for _, in := range b.Instructions {
		switch {
		case in.Kind.Appears():
			if !c.on[in.Target] {
				c.on[in.Target] = true
				c.shapes = append(c.shapes, in.Target)
			}
		case in.Kind == anim.FadeOut:
			c.remove(in.Target)
		}
	}
	return nil
}

func (c *Canvas) remove(s shape.Shape) {
	if !c.on[s] {
		return
	}
	delete(c.on, s)
	for i, it := range c.shapes {
		if it == s {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			return
		}
	}
}

func (c *Canvas) Contains(s shape.Shape) bool { return c.on[s] }

func (c *Canvas) Len() int { return len(c.shapes) }

// Shapes returns a copy of the canvas contents in draw order
func (c *Canvas) Shapes() []shape.Shape {
	return append([]shape.Shape(nil), c.shapes...)
}
