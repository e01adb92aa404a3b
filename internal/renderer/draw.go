package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/relativity/internal/camera"
	"github.com/ivlev/relativity/internal/config"
	"github.com/ivlev/relativity/internal/effects"
	"github.com/ivlev/relativity/internal/shape"
)

// circleSegments is the polyline resolution of circles and rings
const circleSegments = 72

// painter draws one frame. It is not safe for concurrent use; every worker
// builds its own.
type painter struct {
	img        *image.RGBA
	frame      config.Frame
	background color.NRGBA
	ppu        float64
	lineScale  float64
	cam        camera.Orientation

	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher
	faces   *faceCache
}

func newPainter(img *image.RGBA, f config.Frame, bg color.NRGBA) *painter {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &painter{
		img:        img,
		frame:      f,
		background: bg,
		ppu:        f.PixelsPerUnit(),
		lineScale:  float64(f.PixelHeight) / 1080,
		scanner:    scanner,
		filler:     rasterx.NewFiller(w, h, scanner),
		dasher:     rasterx.NewDasher(w, h, scanner),
	}
}

// xform is the visual scale/offset applied on top of a shape's geometry
type xform struct {
	pivot shape.Vec
	k     float64
	off   shape.Vec
}

func (x xform) apply(v shape.Vec) shape.Vec {
	return v.ScaleAbout(x.k, x.pivot).Add(x.off)
}

func (x xform) apply3(v shape.Vec3) shape.Vec3 {
	xy := x.apply(v.XY())
	return shape.Vec3{X: xy.X, Y: xy.Y, Z: v.Z * x.k}
}

func (p *painter) paint(st frameState) {
	p.cam = st.cam
	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(p.background), image.Point{}, draw.Src)

	faces := acquireFaces()
	defer releaseFaces(faces)
	p.faces = faces

	for _, it := range st.items {
		p.drawShape(it.s, it.v)
	}
}

func (p *painter) drawShape(s shape.Shape, v effects.Visual) {
	if v.Opacity <= 0 {
		return
	}
	xf := xform{pivot: s.Bounds().Center(), k: v.Scale, off: v.Offset}

	if v.Morph != nil && v.MorphT > 0 {
		p.drawMorph(s, v, xf)
		return
	}
	for _, leaf := range shape.Leaves(s) {
		p.drawLeaf(leaf, xf, v.Opacity, v.Reveal)
	}
}

// drawMorph interpolates geometry between two spheres and cross-fades any
// other pair of shapes.
func (p *painter) drawMorph(s shape.Shape, v effects.Visual, xf xform) {
	t := v.MorphT
	if a, ok := s.(*shape.Sphere); ok {
		if b, ok := v.Morph.(*shape.Sphere); ok {
			m := shape.NewSphere(lerp(a.Radius, b.Radius, t), lerpStyle(a.Style(), b.Style(), t))
			m.Center = shape.Vec3{
				X: lerp(a.Center.X, b.Center.X, t),
				Y: lerp(a.Center.Y, b.Center.Y, t),
				Z: lerp(a.Center.Z, b.Center.Z, t),
			}
			p.drawLeaf(m, xf, v.Opacity, v.Reveal)
			return
		}
	}

	if t < 1 {
		for _, leaf := range shape.Leaves(s) {
			p.drawLeaf(leaf, xf, v.Opacity*(1-t), v.Reveal)
		}
	}
	for _, leaf := range shape.Leaves(v.Morph) {
		p.drawLeaf(leaf, xf, v.Opacity*t, v.Reveal)
	}
}

func (p *painter) drawLeaf(s shape.Shape, xf xform, opacity, reveal float64) {
	world := s.InWorld()
	st := s.Style()

	switch l := s.(type) {
	case *shape.Circle:
		pts := p.ring(l.Center, l.Radius, 0, world, xf)
		p.path(pts, true, st, opacity, reveal)
	case *shape.Rectangle:
		hw, hh := l.Width/2, l.Height/2
		corners := []shape.Vec{
			{X: l.Center.X - hw, Y: l.Center.Y + hh},
			{X: l.Center.X + hw, Y: l.Center.Y + hh},
			{X: l.Center.X + hw, Y: l.Center.Y - hh},
			{X: l.Center.X - hw, Y: l.Center.Y - hh},
		}
		pts := make([]pt, 0, 4)
		for _, c := range corners {
			pts = append(pts, p.place(shape.Vec3{X: c.X, Y: c.Y}, world, xf))
		}
		p.path(pts, true, st, opacity, reveal)
	case *shape.Line:
		pts := []pt{
			p.place(shape.Vec3{X: l.From.X, Y: l.From.Y}, world, xf),
			p.place(shape.Vec3{X: l.To.X, Y: l.To.Y}, world, xf),
		}
		p.path(pts, false, st, opacity, reveal)
	case *shape.Annulus:
		p.annulus(l, world, xf, opacity, reveal)
	case *shape.Text:
		p.text(l, xf, opacity, reveal)
	case *shape.NarratorFigure:
		p.image(l.Image, xf, opacity*reveal)
	case *shape.Image:
		p.image(l, xf, opacity*reveal)
	case *shape.Surface:
		p.surface(l, xf, opacity, reveal)
	case *shape.Sphere:
		p.sphere(l, xf, opacity*reveal)
	case *shape.Curve:
		raw := l.Points()
		pts := make([]pt, 0, len(raw))
		for _, w := range raw {
			pts = append(pts, p.place(w, true, xf))
		}
		p.path(pts, false, st, opacity, reveal)
	}
}

// pt is a point in pixel space
type pt struct{ x, y float64 }

func (q pt) fixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(q.x * 64), Y: fixed.Int26_6(q.y * 64)}
}

func (p *painter) toPx(v shape.Vec) pt {
	return pt{
		x: (v.X + p.frame.Width/2) * p.ppu,
		y: (p.frame.Height/2 - v.Y) * p.ppu,
	}
}

// place maps a shape point through the visual transform and, for world
// shapes, the camera.
func (p *painter) place(v shape.Vec3, world bool, xf xform) pt {
	v = xf.apply3(v)
	if world {
		proj, _ := p.cam.Project(v)
		return p.toPx(proj)
	}
	return p.toPx(v.XY())
}

func (p *painter) ring(center shape.Vec, r, start float64, world bool, xf xform) []pt {
	pts := make([]pt, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		a := start + 2*math.Pi*float64(i)/circleSegments
		v := shape.Vec3{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
		pts = append(pts, p.place(v, world, xf))
	}
	return pts
}

// path fills (closed paths only) and strokes a polyline. reveal draws the
// leading fraction of the outline and fades the fill in with it.
func (p *painter) path(pts []pt, closed bool, st shape.Style, opacity, reveal float64) {
	if len(pts) < 2 || reveal <= 0 {
		return
	}

	if closed && st.FillOpacity > 0 {
		p.filler.Clear()
		p.filler.SetColor(withAlpha(st.Fill, st.FillOpacity*opacity*reveal))
		p.filler.Start(pts[0].fixed())
		for _, q := range pts[1:] {
			p.filler.Line(q.fixed())
		}
		p.filler.Stop(true)
		p.filler.Draw()
		p.filler.Clear()
	}

	if st.StrokeWidth <= 0 || st.StrokeOpacity <= 0 {
		return
	}
	outline := pts
	if closed {
		outline = append(append([]pt{}, pts...), pts[0])
	}
	whole := reveal >= 1
	if !whole {
		outline = partial(outline, reveal)
	}
	if len(outline) < 2 {
		return
	}

	width := fixed.Int26_6(st.StrokeWidth * p.lineScale * 64)
	p.dasher.Clear()
	p.dasher.SetStroke(width, 4*64, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	p.dasher.SetColor(withAlpha(st.Stroke, st.StrokeOpacity*opacity))
	p.dasher.Start(outline[0].fixed())
	for _, q := range outline[1:] {
		p.dasher.Line(q.fixed())
	}
	p.dasher.Stop(closed && whole)
	p.dasher.Draw()
	p.dasher.Clear()
}

// partial keeps the leading fraction f of the polyline's length
func partial(pts []pt, f float64) []pt {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].x-pts[i-1].x, pts[i].y-pts[i-1].y)
	}
	want := total * f
	out := []pt{pts[0]}
	var done float64
	for i := 1; i < len(pts); i++ {
		seg := math.Hypot(pts[i].x-pts[i-1].x, pts[i].y-pts[i-1].y)
		if done+seg >= want {
			t := 0.0
			if seg > 0 {
				t = (want - done) / seg
			}
			out = append(out, pt{
				x: lerp(pts[i-1].x, pts[i].x, t),
				y: lerp(pts[i-1].y, pts[i].y, t),
			})
			return out
		}
		done += seg
		out = append(out, pts[i])
	}
	return out
}

func (p *painter) annulus(a *shape.Annulus, world bool, xf xform, opacity, reveal float64) {
	outer := p.ring(a.Center, a.Outer, a.Rotation, world, xf)
	inner := p.ring(a.Center, a.Inner, a.Rotation, world, xf)
	st := a.Style()

	if st.FillOpacity > 0 && reveal > 0 {
		// inner ring wound backwards so the nonzero rule leaves the hole open
		p.filler.Clear()
		p.filler.SetColor(withAlpha(st.Fill, st.FillOpacity*opacity*reveal))
		p.filler.Start(outer[0].fixed())
		for _, q := range outer[1:] {
			p.filler.Line(q.fixed())
		}
		p.filler.Stop(true)
		p.filler.Start(inner[len(inner)-1].fixed())
		for i := len(inner) - 2; i >= 0; i-- {
			p.filler.Line(inner[i].fixed())
		}
		p.filler.Stop(true)
		p.filler.Draw()
		p.filler.Clear()
	}

	edge := st
	edge.FillOpacity = 0
	p.path(outer, true, edge, opacity, reveal)
	p.path(inner, true, edge, opacity, reveal)
}

type projectedQuad struct {
	pts   []pt
	depth float64
	fill  color.NRGBA
}

// surface draws the revealed share of quads back to front
func (p *painter) surface(s *shape.Surface, xf xform, opacity, reveal float64) {
	quads := s.Quads()
	n := int(math.Round(reveal * float64(len(quads))))
	st := s.Style()

	out := make([]projectedQuad, 0, n)
	for _, q := range quads[:n] {
		pq := projectedQuad{pts: make([]pt, 0, 4), fill: s.Checker[q.Parity]}
		for _, c := range q.Corners {
			c = xf.apply3(c)
			proj, depth := p.cam.Project(c)
			pq.pts = append(pq.pts, p.toPx(proj))
			pq.depth += depth / 4
		}
		out = append(out, pq)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth < out[j].depth })

	for _, q := range out {
		qs := st
		qs.Fill = q.fill
		p.path(q.pts, true, qs, opacity, 1)
	}
}

func (p *painter) sphere(s *shape.Sphere, xf xform, opacity float64) {
	c := xf.apply3(s.Center)
	proj, _ := p.cam.Project(c)
	r := s.Radius * xf.k * p.cam.Scale(c)

	pts := make([]pt, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts = append(pts, p.toPx(shape.Vec{X: proj.X + r*math.Cos(a), Y: proj.Y + r*math.Sin(a)}))
	}
	p.path(pts, true, s.Style(), opacity, 1)
}

func (p *painter) image(m *shape.Image, xf xform, opacity float64) {
	alpha := m.Style().FillOpacity * opacity
	if alpha <= 0 || m.Img == nil {
		return
	}
	c := p.toPx(xf.apply(m.Center))
	w := m.Width * xf.k * p.ppu
	h := m.Height * xf.k * p.ppu
	dst := image.Rect(int(c.x-w/2), int(c.y-h/2), int(c.x+w/2), int(c.y+h/2))
	if dst.Empty() {
		return
	}

	var opts *xdraw.Options
	if alpha < 1 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(alpha * 255)})}
	}
	xdraw.ApproxBiLinear.Scale(p.img, dst, m.Img, m.Img.Bounds(), xdraw.Over, opts)
}

func withAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(lerp(float64(a.R), float64(b.R), t)),
		G: uint8(lerp(float64(a.G), float64(b.G), t)),
		B: uint8(lerp(float64(a.B), float64(b.B), t)),
		A: uint8(lerp(float64(a.A), float64(b.A), t)),
	}
}

func lerpStyle(a, b shape.Style, t float64) shape.Style {
	return shape.Style{
		Stroke:        lerpColor(a.Stroke, b.Stroke, t),
		StrokeWidth:   lerp(a.StrokeWidth, b.StrokeWidth, t),
		StrokeOpacity: lerp(a.StrokeOpacity, b.StrokeOpacity, t),
		Fill:          lerpColor(a.Fill, b.Fill, t),
		FillOpacity:   lerp(a.FillOpacity, b.FillOpacity, t),
	}
}
