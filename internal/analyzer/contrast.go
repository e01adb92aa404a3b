package analyzer

import (
	"image"
	"image/color"
)

// ContrastDetector finds regions that differ from the background, taken as
// the color of the top-left pixel. It suits opaque rasters such as rendered
// PDF pages.
type ContrastDetector struct {
	MinBlockArea int     // Minimum area in pixels²
	Threshold    float64 // Luma difference (0-255) counted as content
	Dilation     int     // Kernel size used to merge nearby strokes
}

func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea: 500,
		Threshold:    30.0,
		Dilation:     5,
	}
}

func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, nil
	}
	bg := luma(img.At(b.Min.X, b.Min.Y))

	m := newMask(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			diff := luma(img.At(x, y)) - bg
			if diff > d.Threshold || diff < -d.Threshold {
				m.set(x, y)
			}
		}
	}
	if d.Dilation > 1 {
		m = dilate(m, d.Dilation)
	}

	var blocks []Block
	for _, rect := range findContours(m) {
		if rect.Dx()*rect.Dy() >= d.MinBlockArea {
			blocks = append(blocks, Block{Rect: rect, Kind: "contrast", Confidence: 0.7})
		}
	}
	return blocks, nil
}

func luma(c color.Color) float64 {
	return float64(color.GrayModel.Convert(c).(color.Gray).Y)
}

// dilate grows every set pixel to a kernelSize square so strokes separated
// by a few pixels form one region.
func dilate(m *mask, kernelSize int) *mask {
	half := kernelSize / 2
	out := newMask(m.bounds)
	b := m.bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !m.at(x, y) {
				continue
			}
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					if (image.Point{X: x + kx, Y: y + ky}).In(b) {
						out.set(x+kx, y+ky)
					}
				}
			}
		}
	}
	return out
}

// findContours finds bounding rectangles of connected set regions
func findContours(m *mask) []image.Rectangle {
	b := m.bounds
	visited := newMask(b)

	var contours []image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.at(x, y) && !visited.at(x, y) {
				contours = append(contours, floodFill(m, visited, x, y))
			}
		}
	}
	return contours
}

// floodFill marks one 4-connected region and returns its bounding rectangle
func floodFill(m, visited *mask, startX, startY int) image.Rectangle {
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	stack := []image.Point{{X: startX, Y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !m.at(p.X, p.Y) || visited.at(p.X, p.Y) {
			continue
		}
		visited.set(p.X, p.Y)

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}

	return image.Rect(minX, minY, maxX+1, maxY+1)
}
