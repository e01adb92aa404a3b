package shape

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is the color type shapes are styled with
type Color = color.NRGBA

// Palette used by the video
var (
	White  = MustHex("#FFFFFF")
	Black  = MustHex("#000000")
	Blue   = MustHex("#58C4DD")
	BlueD  = MustHex("#29ABCA")
	BlueE  = MustHex("#236B8E")
	Green  = MustHex("#83C167")
	Red    = MustHex("#FC6255")
	Yellow = MustHex("#FFFF00")
)

// ParseHex parses "#rrggbb" into an opaque color
func ParseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustHex is ParseHex for package-level constants
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// GradientAt blends along the stops at t in [0,1], interpolating in Lab
// space so the midpoints do not go muddy.
func GradientAt(stops []color.NRGBA, t float64) color.NRGBA {
	switch len(stops) {
	case 0:
		return White
	case 1:
		return stops[0]
	}
	if t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	seg := t * float64(len(stops)-1)
	i := int(seg)
	local := seg - float64(i)

	a, _ := colorful.MakeColor(stops[i])
	b, _ := colorful.MakeColor(stops[i+1])
	r, g, bl := a.BlendLab(b, local).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 255}
}
