package shape

import (
	"fmt"
	"image"
)

const (
	// NarratorHeight is the natural height of the narrator asset in frame units
	NarratorHeight = 2.0
	// NarratorScale is applied once at construction
	NarratorScale = 1.5
)

// NarratorFigure is the on-screen presenter. Its size is fixed at
// construction; afterwards only its position changes.
type NarratorFigure struct {
	*Image
}

func NewNarratorFigure(img image.Image, scale float64) (*NarratorFigure, error) {
	if img == nil {
		return nil, fmt.Errorf("narrator image is nil: %w", ErrInvalidParameter)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("narrator image is empty: %w", ErrInvalidParameter)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("narrator scale %.3f: %w", scale, ErrInvalidParameter)
	}
	m := NewImage(img, NarratorHeight*scale)
	m.SetName("narrator")
	return &NarratorFigure{Image: m}, nil
}

// ScaleAbout moves the figure as a scale would but keeps its size
func (n *NarratorFigure) ScaleAbout(k float64, p Vec) {
	n.Center = n.Center.ScaleAbout(k, p)
}

// PlaceNarrator puts n at its default anchor: left edge, one unit down
func PlaceNarrator(n Shape, frame Box) {
	ToEdge(n, Left, frame)
	n.Shift(Down)
}
