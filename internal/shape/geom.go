package shape

import "math"

// Vec is a point or offset in frame units (origin at the frame center, y up)
type Vec struct {
	X, Y float64
}

// Vec3 is a point in world units, used by camera-projected shapes
type Vec3 struct {
	X, Y, Z float64
}

var (
	Origin = Vec{}
	Up     = Vec{0, 1}
	Down   = Vec{0, -1}
	Left   = Vec{-1, 0}
	Right  = Vec{1, 0}
)

const (
	// DefaultBuff is the gap NextTo leaves between two shapes
	DefaultBuff = 0.25
	// EdgeBuff is the gap ToEdge leaves between a shape and the frame border
	EdgeBuff = 0.5
)

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// ScaleAbout scales v away from (or toward) the pivot p by k
func (v Vec) ScaleAbout(k float64, p Vec) Vec {
	return p.Add(v.Sub(p).Mul(k))
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }
func (v Vec3) XY() Vec { return Vec{v.X, v.Y} }

// Box is an axis-aligned bounding box in frame units
type Box struct {
	Min, Max Vec
}

func BoxAround(center Vec, w, h float64) Box {
	return Box{
		Min: Vec{center.X - w/2, center.Y - h/2},
		Max: Vec{center.X + w/2, center.Y + h/2},
	}
}

func (b Box) Width() float64  { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }
func (b Box) Center() Vec {
	return Vec{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Empty reports whether the box has never been extended
func (b Box) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Union returns the smallest box containing b and o
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{
		Min: Vec{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

// CriticalPoint returns the point of the box in direction dir: the center
// moved by half the width/height along each nonzero component.
func (b Box) CriticalPoint(dir Vec) Vec {
	c := b.Center()
	return Vec{
		X: c.X + sign(dir.X)*b.Width()/2,
		Y: c.Y + sign(dir.Y)*b.Height()/2,
	}
}

// emptyBox is the identity for Union
func emptyBox() Box {
	return Box{
		Min: Vec{math.Inf(1), math.Inf(1)},
		Max: Vec{math.Inf(-1), math.Inf(-1)},
	}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
