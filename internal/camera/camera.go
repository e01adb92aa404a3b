package camera

import (
	"math"

	"github.com/ivlev/relativity/internal/shape"
)

// DefaultFocal is the distance from the camera to the origin in world units
const DefaultFocal = 20.0

// Orientation describes where the camera looks from. Phi is the polar angle
// measured from the +z axis, Theta the azimuth around it, both in radians.
// Phi=0, Theta=-90° is the flat top-down view where x points right and y up.
type Orientation struct {
	Phi   float64 `yaml:"phi"`
	Theta float64 `yaml:"theta"`
	Focal float64 `yaml:"focal"`
}

// Degrees builds an Orientation from angles in degrees
func Degrees(phi, theta float64) Orientation {
	return Orientation{
		Phi:   phi * math.Pi / 180,
		Theta: theta * math.Pi / 180,
		Focal: DefaultFocal,
	}
}

// TopDown is the unrotated view
func TopDown() Orientation { return Degrees(0, -90) }

// Rotate applies the camera rotation: first about z by -(θ+90°), then about
// x by -φ.
func (o Orientation) Rotate(p shape.Vec3) shape.Vec3 {
	a := -o.Theta - math.Pi/2
	sa, ca := math.Sin(a), math.Cos(a)
	x := p.X*ca - p.Y*sa
	y := p.X*sa + p.Y*ca
	z := p.Z

	b := -o.Phi
	sb, cb := math.Sin(b), math.Cos(b)
	return shape.Vec3{
		X: x,
		Y: y*cb - z*sb,
		Z: y*sb + z*cb,
	}
}

// Project maps a world point into frame units and returns its depth
// (larger is closer to the camera).
func (o Orientation) Project(p shape.Vec3) (shape.Vec, float64) {
	r := o.Rotate(p)
	focal := o.Focal
	if focal <= 0 {
		focal = DefaultFocal
	}
	k := 1.0
	if r.Z < focal {
		k = focal / (focal - r.Z)
	}
	return shape.Vec{X: r.X * k, Y: r.Y * k}, r.Z
}

// Scale is the perspective magnification at a world point, used to size
// discs such as spheres.
func (o Orientation) Scale(p shape.Vec3) float64 {
	r := o.Rotate(p)
	focal := o.Focal
	if focal <= 0 {
		focal = DefaultFocal
	}
	if r.Z >= focal {
		return 1
	}
	return focal / (focal - r.Z)
}

// Interpolate moves from a to b; t is already eased.
func Interpolate(a, b Orientation, t float64) Orientation {
	return Orientation{
		Phi:   lerp(a.Phi, b.Phi, t),
		Theta: lerp(a.Theta, b.Theta, t),
		Focal: lerp(a.Focal, b.Focal, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
