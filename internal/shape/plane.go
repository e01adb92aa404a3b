package shape

import "fmt"

// Range is a closed interval sampled every Step
type Range struct {
	Min, Max, Step float64
}

// NumberPlane is a coordinate grid with highlighted axes, one frame unit per
// grid step.
type NumberPlane struct {
	*Group
	xAxis, yAxis *Line
}

// NewNumberPlane builds the grid; background styles the grid lines, the
// axes are always drawn in white.
func NewNumberPlane(xr, yr Range, background Style) (*NumberPlane, error) {
	if xr.Step <= 0 || yr.Step <= 0 || xr.Max <= xr.Min || yr.Max <= yr.Min {
		return nil, fmt.Errorf("number plane ranges %v %v: %w", xr, yr, ErrInvalidParameter)
	}
	g := NewGroup("number-plane")
	for x := xr.Min; x <= xr.Max+1e-9; x += xr.Step {
		if x == 0 {
			continue
		}
		g.Add(NewLine(Vec{x, yr.Min}, Vec{x, yr.Max}, background))
	}
	for y := yr.Min; y <= yr.Max+1e-9; y += yr.Step {
		if y == 0 {
			continue
		}
		g.Add(NewLine(Vec{xr.Min, y}, Vec{xr.Max, y}, background))
	}

	axis := Outline(White, 2)
	p := &NumberPlane{
		xAxis: NewLine(Vec{xr.Min, 0}, Vec{xr.Max, 0}, axis),
		yAxis: NewLine(Vec{0, yr.Min}, Vec{0, yr.Max}, axis),
	}
	p.xAxis.SetName("x-axis")
	p.yAxis.SetName("y-axis")
	g.Add(p.xAxis, p.yAxis)
	p.Group = g
	return p, nil
}

func (p *NumberPlane) XAxis() *Line { return p.xAxis }
func (p *NumberPlane) YAxis() *Line { return p.yAxis }
