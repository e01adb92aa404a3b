package shape

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// ErrInvalidParameter marks a shape built from impossible geometry
// (non-positive radius or scale, missing image).
var ErrInvalidParameter = errors.New("invalid shape parameter")

// Shape is anything the renderer can draw. Shapes are mutated only while a
// stage is laying them out; once handed to the renderer they are read-only.
type Shape interface {
	Name() string
	Bounds() Box
	Shift(d Vec)
	ScaleAbout(k float64, p Vec)
	Style() Style
	SetStyle(s Style)
	// InWorld reports whether the shape lives in 3D space and must be
	// projected through the camera. Other shapes are fixed in the frame.
	InWorld() bool
}

// Style describes how a shape is painted. Widths are pixels at 1080p.
type Style struct {
	Stroke        color.NRGBA
	StrokeWidth   float64
	StrokeOpacity float64
	Fill          color.NRGBA
	FillOpacity   float64
}

// Outline returns a stroke-only style
func Outline(c color.NRGBA, width float64) Style {
	return Style{Stroke: c, StrokeWidth: width, StrokeOpacity: 1}
}

// Solid returns a fill-only style
func Solid(c color.NRGBA, opacity float64) Style {
	return Style{Fill: c, FillOpacity: opacity}
}

type base struct {
	name  string
	style Style
	world bool
}

func (b *base) Name() string { return b.name }
func (b *base) Style() Style { return b.style }
func (b *base) SetStyle(s Style) { b.style = s }
func (b *base) InWorld() bool { return b.world }
func (b *base) setWorld(w bool) { b.world = w }
func (b *base) SetName(n string) { b.name = n }

// Scale scales s about its own center
func Scale(s Shape, k float64) {
	s.ScaleAbout(k, s.Bounds().Center())
}

// Circle

type Circle struct {
	base
	Center Vec
	Radius float64
}

func NewCircle(radius float64, st Style) *Circle {
	return &Circle{base: base{name: "circle", style: st}, Radius: radius}
}

func (c *Circle) Bounds() Box { return BoxAround(c.Center, 2*c.Radius, 2*c.Radius) }
func (c *Circle) Shift(d Vec) { c.Center = c.Center.Add(d) }
func (c *Circle) ScaleAbout(k float64, p Vec) {
	c.Center = c.Center.ScaleAbout(k, p)
	c.Radius *= k
}

// Rectangle

type Rectangle struct {
	base
	Center        Vec
	Width, Height float64
}

func NewRectangle(w, h float64, st Style) *Rectangle {
	return &Rectangle{base: base{name: "rectangle", style: st}, Width: w, Height: h}
}

func (r *Rectangle) Bounds() Box { return BoxAround(r.Center, r.Width, r.Height) }
func (r *Rectangle) Shift(d Vec) { r.Center = r.Center.Add(d) }
func (r *Rectangle) ScaleAbout(k float64, p Vec) {
	r.Center = r.Center.ScaleAbout(k, p)
	r.Width *= k
	r.Height *= k
}

// Line

type Line struct {
	base
	From, To Vec
}

func NewLine(from, to Vec, st Style) *Line {
	return &Line{base: base{name: "line", style: st}, From: from, To: to}
}

func (l *Line) Bounds() Box {
	return Box{
		Min: Vec{math.Min(l.From.X, l.To.X), math.Min(l.From.Y, l.To.Y)},
		Max: Vec{math.Max(l.From.X, l.To.X), math.Max(l.From.Y, l.To.Y)},
	}
}
func (l *Line) Shift(d Vec) { l.From, l.To = l.From.Add(d), l.To.Add(d) }
func (l *Line) ScaleAbout(k float64, p Vec) {
	l.From, l.To = l.From.ScaleAbout(k, p), l.To.ScaleAbout(k, p)
}

// Annulus is a ring between two concentric circles
type Annulus struct {
	base
	Center       Vec
	Inner, Outer float64
	Rotation     float64
}

func NewAnnulus(inner, outer float64, st Style) *Annulus {
	return &Annulus{base: base{name: "annulus", style: st}, Inner: inner, Outer: outer}
}

func (a *Annulus) Bounds() Box { return BoxAround(a.Center, 2*a.Outer, 2*a.Outer) }
func (a *Annulus) Shift(d Vec) { a.Center = a.Center.Add(d) }
func (a *Annulus) ScaleAbout(k float64, p Vec) {
	a.Center = a.Center.ScaleAbout(k, p)
	a.Inner *= k
	a.Outer *= k
}

// Rotate turns the ring about its center; it changes where Create starts
// drawing the outline.
func (a *Annulus) Rotate(rad float64) { a.Rotation += rad }

// Image is a raster placed in the frame
type Image struct {
	base
	Img           image.Image
	Center        Vec
	Width, Height float64
}

// NewImage sizes img to the given height in frame units, keeping its aspect
func NewImage(img image.Image, height float64) *Image {
	b := img.Bounds()
	aspect := 1.0
	if b.Dy() > 0 {
		aspect = float64(b.Dx()) / float64(b.Dy())
	}
	return &Image{
		base:   base{name: "image", style: Style{FillOpacity: 1}},
		Img:    img,
		Width:  height * aspect,
		Height: height,
	}
}

func (m *Image) Bounds() Box { return BoxAround(m.Center, m.Width, m.Height) }
func (m *Image) Shift(d Vec) { m.Center = m.Center.Add(d) }
func (m *Image) ScaleAbout(k float64, p Vec) {
	m.Center = m.Center.ScaleAbout(k, p)
	m.Width *= k
	m.Height *= k
}

// Group owns its children; they share the group's lifecycle on canvas.
type Group struct {
	base
	Items []Shape
}

func NewGroup(name string, items ...Shape) *Group {
	return &Group{base: base{name: name}, Items: items}
}

func (g *Group) Add(items ...Shape) { g.Items = append(g.Items, items...) }

func (g *Group) Bounds() Box {
	b := emptyBox()
	for _, it := range g.Items {
		b = b.Union(it.Bounds())
	}
	if b.Empty() {
		return Box{}
	}
	return b
}

func (g *Group) Shift(d Vec) {
	for _, it := range g.Items {
		it.Shift(d)
	}
}

func (g *Group) ScaleAbout(k float64, p Vec) {
	for _, it := range g.Items {
		it.ScaleAbout(k, p)
	}
}

// SetStyle restyles every child
func (g *Group) SetStyle(s Style) {
	g.style = s
	for _, it := range g.Items {
		it.SetStyle(s)
	}
}

func (g *Group) setWorld(w bool) {
	g.world = w
	for _, it := range g.Items {
		if ws, ok := it.(interface{ setWorld(bool) }); ok {
			ws.setWorld(w)
		}
	}
}

// Children returns the direct children of composite shapes, nil for leaves
func Children(s Shape) []Shape {
	switch v := s.(type) {
	case *Group:
		return v.Items
	case *ThoughtBubble:
		return v.Items
	case *NumberPlane:
		return v.Items
	}
	return nil
}

// Leaves flattens s into its drawable leaves, depth first
func Leaves(s Shape) []Shape {
	kids := Children(s)
	if kids == nil {
		return []Shape{s}
	}
	var out []Shape
	for _, k := range kids {
		out = append(out, Leaves(k)...)
	}
	return out
}

// MarkWorld moves s (and its children) into camera-projected 3D space
func MarkWorld(s Shape) {
	if ws, ok := s.(interface{ setWorld(bool) }); ok {
		ws.setWorld(true)
	}
}

// Recolor sets the stroke color of s and every child, keeping widths
func Recolor(s Shape, c color.NRGBA) {
	for _, leaf := range Leaves(s) {
		st := leaf.Style()
		st.Stroke = c
		leaf.SetStyle(st)
	}
}
