package shape

import (
	"image/color"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontUnitsPerFrameUnit converts a font size into an em height in frame
// units: a size-48 caption is half a unit tall.
const FontUnitsPerFrameUnit = 96.0

// measurePx is the pixel size of the shared measuring face; widths scale
// linearly with size because hinting is off.
const measurePx = 100.0

var (
	fontOnce    sync.Once
	regularFont *opentype.Font

	measureMu   sync.Mutex
	measureFace font.Face
)

// RegularFont returns the embedded Go Regular font, or nil if it failed to
// parse (callers fall back to basicfont).
func RegularFont() *opentype.Font {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		regularFont = f
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    measurePx,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err == nil {
			measureFace = face
		}
	})
	return regularFont
}

// Text is a (possibly multi-line) caption centered on Center
type Text struct {
	base
	Content  string
	FontSize float64
	Center   Vec
	Factor   float64
	// Gradient, when it has two or more stops, colors the glyphs left to
	// right instead of the fill color.
	Gradient []color.NRGBA
}

func NewText(content string, size float64) *Text {
	return &Text{
		base:     base{name: "text", style: Solid(White, 1)},
		Content:  content,
		FontSize: size,
		Factor:   1,
	}
}

// WithGradient colors the text across the given stops and returns t
func (t *Text) WithGradient(stops ...color.NRGBA) *Text {
	t.Gradient = stops
	return t
}

// WithColor sets a flat fill color and returns t
func (t *Text) WithColor(c color.NRGBA) *Text {
	t.style.Fill = c
	return t
}

func (t *Text) Lines() []string { return strings.Split(t.Content, "\n") }

// EmSize is the em height in frame units after scaling
func (t *Text) EmSize() float64 { return t.FontSize / FontUnitsPerFrameUnit * t.Factor }

// LineHeight is the baseline-to-baseline distance in frame units
func (t *Text) LineHeight() float64 {
	_, lh := measure("")
	return lh * t.EmSize()
}

func (t *Text) Bounds() Box {
	var w float64
	lines := t.Lines()
	for _, l := range lines {
		lw, _ := measure(l)
		if lw > w {
			w = lw
		}
	}
	em := t.EmSize()
	return BoxAround(t.Center, w*em, float64(len(lines))*t.LineHeight())
}

func (t *Text) Shift(d Vec) { t.Center = t.Center.Add(d) }
func (t *Text) ScaleAbout(k float64, p Vec) {
	t.Center = t.Center.ScaleAbout(k, p)
	t.Factor *= k
}

// RuneCount is the number of visible glyphs, used by Write to reveal text
func (t *Text) RuneCount() int {
	n := 0
	for _, r := range t.Content {
		if r != '\n' {
			n++
		}
	}
	return n
}

// measure returns the advance width of s and the line height, both in ems
func measure(s string) (w, lineHeight float64) {
	RegularFont()
	measureMu.Lock()
	defer measureMu.Unlock()

	face := measureFace
	px := measurePx
	if face == nil {
		face = basicfont.Face7x13
		px = 13
	}
	adv := font.MeasureString(face, s)
	m := face.Metrics()
	return float64(adv) / 64 / px, float64(m.Height) / 64 / px
}
