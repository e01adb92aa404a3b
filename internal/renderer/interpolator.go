package renderer

import (
	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/camera"
	"github.com/ivlev/relativity/internal/effects"
	"github.com/ivlev/relativity/internal/shape"
)

// item is a shape on canvas together with its committed visual state
type item struct {
	s shape.Shape
	v effects.Visual
}

// track is one instruction resolved against the canvas at batch start
type track struct {
	target *item
	eff    effects.Effect
	easing anim.Easing
}

// plan holds everything needed to compute any frame of one batch. Frames are
// a pure function of the plan, so they can be rasterized out of order.
type plan struct {
	order   []*item
	tracks  []track
	start   map[*item]effects.Visual
	remove  map[*item]bool
	camFrom camera.Orientation
	camTo   camera.Orientation
	camEase anim.Easing
}

// drawItem is the immutable input for drawing one shape in one frame
type drawItem struct {
	s shape.Shape
	v effects.Visual
}

// frameState is the immutable input of one frame rasterization
type frameState struct {
	items []drawItem
	cam   camera.Orientation
}

// at computes the canvas state at linear batch progress t in [0,1].
// Instructions aimed at the same shape are applied in batch order.
func (p *plan) at(t float64) frameState {
	cur := make(map[*item]effects.Visual, len(p.start))
	for it, v := range p.start {
		cur[it] = v
	}
	for _, tr := range p.tracks {
		cur[tr.target] = tr.eff.At(cur[tr.target], tr.easing.Apply(t))
	}

	st := frameState{
		items: make([]drawItem, 0, len(p.order)),
		cam:   camera.Interpolate(p.camFrom, p.camTo, p.camEase.Apply(t)),
	}
	for _, it := range p.order {
		st.items = append(st.items, drawItem{s: it.s, v: cur[it]})
	}
	return st
}

// frameProgress maps frame i (1-based) of n to linear progress; the last
// frame of a batch always shows its end state.
func frameProgress(i, n int) float64 {
	if n <= 0 {
		return 1
	}
	return float64(i) / float64(n)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
