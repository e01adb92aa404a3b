package analyzer

import "image"

// AlphaDetector finds regions whose opacity exceeds Threshold. It suits
// rasterized vector art, which has a transparent background.
type AlphaDetector struct {
	Threshold    uint16 // 16-bit alpha, as returned by color.Color.RGBA
	MinBlockArea int
}

func NewAlphaDetector() *AlphaDetector {
	return &AlphaDetector{
		Threshold:    0x0800,
		MinBlockArea: 4,
	}
}

func (d *AlphaDetector) Detect(img image.Image) ([]Block, error) {
	b := img.Bounds()
	m := newMask(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > uint32(d.Threshold) {
				m.set(x, y)
			}
		}
	}

	var blocks []Block
	for _, rect := range findContours(m) {
		if rect.Dx()*rect.Dy() >= d.MinBlockArea {
			blocks = append(blocks, Block{Rect: rect, Kind: "alpha", Confidence: 1})
		}
	}
	return blocks, nil
}

// Opaque reports whether every pixel of img is fully opaque, in which case
// alpha tells nothing about where the content is.
func Opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
