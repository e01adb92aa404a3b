package renderer

import (
	"image"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/relativity/internal/shape"
)

// faceCache holds opentype faces by pixel size. Faces keep glyph caches and
// are not safe for concurrent use, so each worker borrows its own cache.
type faceCache struct {
	faces map[int]font.Face
}

var facePool = sync.Pool{
	New: func() interface{} {
		return &faceCache{faces: make(map[int]font.Face)}
	},
}

func acquireFaces() *faceCache  { return facePool.Get().(*faceCache) }
func releaseFaces(c *faceCache) { facePool.Put(c) }

func (c *faceCache) face(px float64) font.Face {
	size := int(math.Round(px))
	if size < 1 {
		size = 1
	}
	if f, ok := c.faces[size]; ok {
		return f
	}

	var face font.Face = basicfont.Face7x13
	if ttf := shape.RegularFont(); ttf != nil {
		f, err := opentype.NewFace(ttf, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err == nil {
			face = f
		}
	}
	c.faces[size] = face
	return face
}

// text draws the caption line by line, centered on its anchor. Write reveals
// whole glyphs in reading order; gradients run across all glyphs.
func (p *painter) text(t *shape.Text, xf xform, opacity, reveal float64) {
	st := t.Style()
	alpha := st.FillOpacity * opacity
	if alpha <= 0 || reveal <= 0 {
		return
	}

	face := p.faces.face(t.EmSize() * xf.k * p.ppu)
	metrics := face.Metrics()
	ascent := float64(metrics.Ascent) / 64
	descent := float64(metrics.Descent) / 64

	lines := t.Lines()
	lineH := t.LineHeight() * xf.k * p.ppu
	c := p.toPx(xf.apply(t.Center))
	top := c.y - lineH*float64(len(lines))/2

	total := t.RuneCount()
	visible := int(math.Floor(reveal*float64(total) + 1e-9))
	span := math.Max(float64(total-1), 1)

	drawn := 0
	for i, line := range lines {
		w := float64(font.MeasureString(face, line)) / 64
		baseline := top + float64(i)*lineH + (lineH+ascent-descent)/2
		d := font.Drawer{
			Dst:  p.img,
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.Int26_6((c.x - w/2) * 64),
				Y: fixed.Int26_6(baseline * 64),
			},
		}
		for _, r := range line {
			if drawn >= visible {
				return
			}
			col := st.Fill
			if len(t.Gradient) >= 2 {
				col = shape.GradientAt(t.Gradient, float64(drawn)/span)
			}
			d.Src = image.NewUniform(withAlpha(col, alpha))
			d.DrawString(string(r))
			drawn++
		}
	}
}
