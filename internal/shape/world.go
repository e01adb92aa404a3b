package shape

import (
	"fmt"
	"image/color"
	"math"
)

// SurfaceFunc maps parameters (u, v) to a point in world space
type SurfaceFunc func(u, v float64) Vec3

// Surface is a parametric patch tessellated into Res quads, colored in a
// checkerboard. It always lives in world space.
type Surface struct {
	base
	Fn      SurfaceFunc
	U, V    [2]float64
	Res     [2]int
	Checker [2]color.NRGBA
	Center  Vec3
	Factor  float64
}

func NewSurface(fn SurfaceFunc, u, v [2]float64, res [2]int, checker [2]color.NRGBA, stroke Style) (*Surface, error) {
	if fn == nil || res[0] < 1 || res[1] < 1 || u[1] <= u[0] || v[1] <= v[0] {
		return nil, fmt.Errorf("surface u=%v v=%v res=%v: %w", u, v, res, ErrInvalidParameter)
	}
	st := stroke
	st.FillOpacity = 1
	return &Surface{
		base:    base{name: "surface", style: st, world: true},
		Fn:      fn,
		U:       u,
		V:       v,
		Res:     res,
		Checker: checker,
		Factor:  1,
	}, nil
}

// Point evaluates the surface at (u, v) after any shift/scale
func (s *Surface) Point(u, v float64) Vec3 {
	return s.Center.Add(s.Fn(u, v).Mul(s.Factor))
}

// Quad is one tessellation cell with its checkerboard parity
type Quad struct {
	Corners [4]Vec3
	Parity  int
}

// Quads tessellates the surface row by row
func (s *Surface) Quads() []Quad {
	du := (s.U[1] - s.U[0]) / float64(s.Res[0])
	dv := (s.V[1] - s.V[0]) / float64(s.Res[1])
	out := make([]Quad, 0, s.Res[0]*s.Res[1])
	for i := 0; i < s.Res[0]; i++ {
		for j := 0; j < s.Res[1]; j++ {
			u0, v0 := s.U[0]+float64(i)*du, s.V[0]+float64(j)*dv
			u1, v1 := u0+du, v0+dv
			out = append(out, Quad{
				Corners: [4]Vec3{s.Point(u0, v0), s.Point(u1, v0), s.Point(u1, v1), s.Point(u0, v1)},
				Parity:  (i + j) % 2,
			})
		}
	}
	return out
}

func (s *Surface) Bounds() Box {
	b := emptyBox()
	for _, q := range s.Quads() {
		for _, c := range q.Corners {
			b = b.Union(Box{Min: c.XY(), Max: c.XY()})
		}
	}
	return b
}

func (s *Surface) Shift(d Vec) { s.Center = s.Center.Add(Vec3{d.X, d.Y, 0}) }
func (s *Surface) ScaleAbout(k float64, p Vec) {
	xy := s.Center.XY().ScaleAbout(k, p)
	s.Center = Vec3{xy.X, xy.Y, s.Center.Z * k}
	s.Factor *= k
}

// Sphere is drawn as a shaded disc at its projected position
type Sphere struct {
	base
	Center Vec3
	Radius float64
}

func NewSphere(radius float64, st Style) *Sphere {
	return &Sphere{base: base{name: "sphere", style: st, world: true}, Radius: radius}
}

func (s *Sphere) Bounds() Box { return BoxAround(s.Center.XY(), 2*s.Radius, 2*s.Radius) }
func (s *Sphere) Shift(d Vec) { s.Center = s.Center.Add(Vec3{d.X, d.Y, 0}) }
func (s *Sphere) ScaleAbout(k float64, p Vec) {
	xy := s.Center.XY().ScaleAbout(k, p)
	s.Center = Vec3{xy.X, xy.Y, s.Center.Z * k}
	s.Radius *= k
}

// CurveFunc maps t to a point in world space
type CurveFunc func(t float64) Vec3

// Curve is a parametric path sampled at Samples+1 points
type Curve struct {
	base
	Fn      CurveFunc
	T       [2]float64
	Samples int
	Center  Vec3
	Factor  float64
}

func NewCurve(fn CurveFunc, t [2]float64, st Style) *Curve {
	return &Curve{
		base:    base{name: "curve", style: st, world: true},
		Fn:      fn,
		T:       t,
		Samples: 96,
		Factor:  1,
	}
}

func (c *Curve) Points() []Vec3 {
	n := c.Samples
	if n < 1 {
		n = 1
	}
	out := make([]Vec3, n+1)
	for i := 0; i <= n; i++ {
		t := c.T[0] + (c.T[1]-c.T[0])*float64(i)/float64(n)
		out[i] = c.Center.Add(c.Fn(t).Mul(c.Factor))
	}
	return out
}

func (c *Curve) Bounds() Box {
	b := emptyBox()
	for _, p := range c.Points() {
		b = b.Union(Box{Min: p.XY(), Max: p.XY()})
	}
	return b
}

func (c *Curve) Shift(d Vec) { c.Center = c.Center.Add(Vec3{d.X, d.Y, 0}) }
func (c *Curve) ScaleAbout(k float64, p Vec) {
	xy := c.Center.XY().ScaleAbout(k, p)
	c.Center = Vec3{xy.X, xy.Y, c.Center.Z * k}
	c.Factor *= k
}

// Gaussian returns the height field z = amp·e^(−(u²+v²)) as a surface
func Gaussian(amp float64) SurfaceFunc {
	return func(u, v float64) Vec3 {
		return Vec3{u, v, amp * math.Exp(-(u*u + v*v))}
	}
}
