package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ivlev/relativity/internal/shape"
)

const (
	clockRadius = 0.3
	handLength  = 0.8 * clockRadius
	photonCount = 5
	waveCount   = 5
)

// newReferenceFrame draws an observer's frame: an outlined box with its
// label underneath.
func newReferenceFrame(name string, c color.NRGBA, at shape.Vec) *shape.Group {
	box := shape.NewRectangle(1, 2, shape.Outline(c, 4))
	box.SetName(name + "-box")
	label := shape.NewText(name, 20)
	label.SetName(name + "-label")
	shape.NextTo(label, box, shape.Down, shape.DefaultBuff)

	g := shape.NewGroup(name, box, label)
	g.Shift(at)
	return g
}

// newClock is a clock face in the frame color with a single white hand
// pointing to twelve.
func newClock(name string, c color.NRGBA) *shape.Group {
	face := shape.NewCircle(clockRadius, shape.Outline(c, 4))
	hand := shape.NewLine(shape.Origin, shape.Up.Mul(handLength), shape.Outline(shape.White, 4))
	return shape.NewGroup(name, face, hand)
}

// newSpacetimeDiagram is a grid with "Space" and "Time" axis labels
func newSpacetimeDiagram() (*shape.Group, error) {
	plane, err := shape.NewNumberPlane(
		shape.Range{Min: -3, Max: 3, Step: 1},
		shape.Range{Min: -3, Max: 3, Step: 1},
		shape.Style{Stroke: shape.BlueD, StrokeWidth: 1, StrokeOpacity: 0.5},
	)
	if err != nil {
		return nil, err
	}
	space := shape.NewText("Space", 24)
	space.SetName("space-label")
	shape.NextTo(space, plane.XAxis(), shape.Right, shape.DefaultBuff)
	tm := shape.NewText("Time", 24)
	tm.SetName("time-label")
	shape.NextTo(tm, plane.YAxis(), shape.Up, shape.DefaultBuff)

	return shape.NewGroup("spacetime-diagram", plane, space, tm), nil
}

func newCurvedSpacetime() (*shape.Surface, error) {
	s, err := shape.NewSurface(
		shape.Gaussian(0.5),
		[2]float64{-2, 2}, [2]float64{-2, 2},
		[2]int{15, 15},
		[2]color.NRGBA{shape.BlueD, shape.BlueE},
		shape.Outline(shape.BlueD, 1),
	)
	if err != nil {
		return nil, err
	}
	s.SetName("spacetime-surface")
	return s, nil
}

// newGravitationalWaves returns concentric rings lying in the surface plane
func newGravitationalWaves() []shape.Shape {
	waves := make([]shape.Shape, waveCount)
	for i := range waves {
		c := shape.NewCircle(0.5+0.5*float64(i), shape.Outline(shape.Blue, 2))
		c.SetName(fmt.Sprintf("wave-%d", i))
		shape.MarkWorld(c)
		waves[i] = c
	}
	return waves
}

func newAccretionDisk() *shape.Annulus {
	d := shape.NewAnnulus(1.5, 3, shape.Solid(shape.Blue, 0.6))
	d.SetName("accretion-disk")
	d.Rotate(math.Pi / 4)
	shape.MarkWorld(d)
	return d
}

// newPhotonOrbits traces light around the hole. Orbit i is the base orbit
// turned by i·π/5 about the vertical axis, so no two coincide.
func newPhotonOrbits() []shape.Shape {
	orbits := make([]shape.Shape, photonCount)
	for i := range orbits {
		turn := float64(i) * math.Pi / photonCount
		sin, cos := math.Sincos(turn)
		c := shape.NewCurve(func(t float64) shape.Vec3 {
			x, y := 1.5*math.Cos(t), 1.5*math.Sin(t)
			return shape.Vec3{X: x*cos - y*sin, Y: x*sin + y*cos, Z: 0.5 * math.Sin(2*t)}
		}, [2]float64{0, 2 * math.Pi}, shape.Outline(shape.White, 2))
		c.SetName(fmt.Sprintf("photon-%d", i))
		orbits[i] = c
	}
	return orbits
}
