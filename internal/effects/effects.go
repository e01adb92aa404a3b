package effects

import (
	"fmt"

	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/shape"
)

// Visual is the animated state of one shape on canvas. The shape's own
// geometry never changes during playback; Visual is applied on top of it.
type Visual struct {
	Opacity float64     // multiplies the style opacities
	Reveal  float64     // fraction of the outline (or glyphs) drawn
	Scale   float64     // about the shape's center
	Offset  shape.Vec   // added after scaling
	Morph   shape.Shape // look the shape is morphing into
	MorphT  float64     // 0 = own look, 1 = Morph's look
}

// Rest is the state of a fully shown, untouched shape
func Rest() Visual {
	return Visual{Opacity: 1, Reveal: 1, Scale: 1}
}

// Hidden is the state before an appear animation starts
func Hidden() Visual {
	return Visual{Opacity: 0, Reveal: 0, Scale: 1}
}

// Effect computes a target's Visual at eased progress p, given the Visual
// it had when the batch started.
type Effect interface {
	At(from Visual, p float64) Visual
}

// For returns the effect of one instruction on its target
func For(in anim.Instruction) (Effect, error) {
	switch in.Kind {
	case anim.FadeIn:
		return fadeIn{shift: in.Shift}, nil
	case anim.FadeOut:
		return fadeOut{shift: in.Shift}, nil
	case anim.Create, anim.Write:
		return reveal{}, nil
	case anim.Transform:
		if in.Into == nil {
			return nil, fmt.Errorf("transform of %s has no target look", name(in.Target))
		}
		return morph{into: in.Into}, nil
	case anim.Scale:
		if in.Factor <= 0 {
			return nil, fmt.Errorf("scale of %s by %.3f", name(in.Target), in.Factor)
		}
		return scale{k: in.Factor}, nil
	default:
		return nil, fmt.Errorf("no effect for instruction kind %q", in.Kind)
	}
}

type fadeIn struct{ shift shape.Vec }

func (e fadeIn) At(from Visual, p float64) Visual {
	v := from
	v.Opacity = p
	v.Reveal = 1
	v.Offset = from.Offset.Sub(e.shift.Mul(1 - p))
	return v
}

type fadeOut struct{ shift shape.Vec }

func (e fadeOut) At(from Visual, p float64) Visual {
	v := from
	v.Opacity = from.Opacity * (1 - p)
	v.Offset = from.Offset.Add(e.shift.Mul(p))
	return v
}

type reveal struct{}

func (reveal) At(from Visual, p float64) Visual {
	v := from
	v.Opacity = 1
	v.Reveal = p
	return v
}

type morph struct{ into shape.Shape }

func (e morph) At(from Visual, p float64) Visual {
	v := from
	v.Morph = e.into
	v.MorphT = p
	return v
}

type scale struct{ k float64 }

func (e scale) At(from Visual, p float64) Visual {
	v := from
	v.Scale = from.Scale * (1 + (e.k-1)*p)
	return v
}

func name(s shape.Shape) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name()
}
