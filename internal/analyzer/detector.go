package analyzer

import (
	"errors"
	"image"
)

// ErrNoContent is returned when an image has nothing visible to keep
var ErrNoContent = errors.New("no visible content")

// Block is one connected visible region of an image
type Block struct {
	Rect       image.Rectangle
	Kind       string  // "alpha" or "contrast", the mask that found it
	Confidence float64 // 0.0-1.0
}

// Detector finds the visible regions of an image
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}

// ContentBounds is the union of every detected block, grown by pad pixels
// and clipped to the image.
func ContentBounds(img image.Image, d Detector, pad int) (image.Rectangle, error) {
	blocks, err := d.Detect(img)
	if err != nil {
		return image.Rectangle{}, err
	}
	var r image.Rectangle
	for _, b := range blocks {
		r = r.Union(b.Rect)
	}
	if r.Empty() {
		return image.Rectangle{}, ErrNoContent
	}
	return r.Inset(-pad).Intersect(img.Bounds()), nil
}

// Trim copies the content bounds of img into a new image anchored at 0,0.
func Trim(img image.Image, d Detector, pad int) (*image.NRGBA, error) {
	r, err := ContentBounds(img, d, pad)
	if err != nil {
		return nil, err
	}
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out.Set(x-r.Min.X, y-r.Min.Y, img.At(x, y))
		}
	}
	return out, nil
}

// mask is a binary coverage map over an image's bounds
type mask struct {
	bounds image.Rectangle
	on     []bool
}

func newMask(b image.Rectangle) *mask {
	return &mask{bounds: b, on: make([]bool, b.Dx()*b.Dy())}
}

func (m *mask) idx(x, y int) int {
	return (y-m.bounds.Min.Y)*m.bounds.Dx() + (x - m.bounds.Min.X)
}

func (m *mask) at(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.bounds) {
		return false
	}
	return m.on[m.idx(x, y)]
}

func (m *mask) set(x, y int) { m.on[m.idx(x, y)] = true }
