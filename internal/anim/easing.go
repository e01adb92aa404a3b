package anim

import "math"

// Easing names a rate function. The zero value means Smooth.
type Easing string

const (
	Smooth         Easing = "smooth"
	Linear         Easing = "linear"
	EaseInOutSine  Easing = "ease_in_out_sine"
	EaseInOutCubic Easing = "ease_in_out_cubic"
)

const smoothInflection = 10.0

// Apply maps linear progress t in [0,1] to eased progress
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case Linear:
		return t
	case EaseInOutSine:
		return -(math.Cos(math.Pi*t) - 1) / 2
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	default:
		// logistic curve renormalized so it passes through 0 and 1
		lo := sigmoid(-smoothInflection / 2)
		v := (sigmoid(smoothInflection*(t-0.5)) - lo) / (1 - 2*lo)
		return math.Min(math.Max(v, 0), 1)
	}
}

// Valid reports whether e is a known rate function
func (e Easing) Valid() bool {
	switch e {
	case "", Smooth, Linear, EaseInOutSine, EaseInOutCubic:
		return true
	}
	return false
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
