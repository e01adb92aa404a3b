package shape

import (
	"fmt"
	"image/color"
)

const (
	// BubbleRadius is the default radius of the main circle
	BubbleRadius = 0.7
	// TrailRadius is the radius of the first trailing circle
	TrailRadius = 0.15
	// TrailCount is fixed: a bubble always trails exactly three circles
	TrailCount = 3
	// trailShrink is the fraction of TrailRadius lost per trailing circle
	trailShrink = 0.2
)

// ThoughtBubble is a speech bubble: a large circle with three shrinking
// circles trailing off its lower-left side.
type ThoughtBubble struct {
	*Group
	main  *Circle
	trail []*Circle
}

type bubbleOptions struct {
	stroke      color.NRGBA
	strokeWidth float64
	fill        color.NRGBA
	fillOpacity float64
	radius      float64
	trailRadius float64
	scale       float64
}

// BubbleOption overrides a ThoughtBubble default
type BubbleOption func(*bubbleOptions)

func WithBubbleStroke(c color.NRGBA, width float64) BubbleOption {
	return func(o *bubbleOptions) { o.stroke, o.strokeWidth = c, width }
}

func WithBubbleFill(c color.NRGBA, opacity float64) BubbleOption {
	return func(o *bubbleOptions) { o.fill, o.fillOpacity = c, opacity }
}

func WithBubbleRadius(main, trail float64) BubbleOption {
	return func(o *bubbleOptions) { o.radius, o.trailRadius = main, trail }
}

func WithBubbleScale(k float64) BubbleOption {
	return func(o *bubbleOptions) { o.scale = k }
}

// TrailRadii returns the radii of the trailing circles for a first radius r
func TrailRadii(r float64) [TrailCount]float64 {
	var out [TrailCount]float64
	for i := range out {
		out[i] = r * (1 - trailShrink*float64(i))
	}
	return out
}

func NewThoughtBubble(opts ...BubbleOption) (*ThoughtBubble, error) {
	o := bubbleOptions{
		stroke:      White,
		strokeWidth: 4,
		radius:      BubbleRadius,
		trailRadius: TrailRadius,
		scale:       1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.radius <= 0 || o.trailRadius <= 0 {
		return nil, fmt.Errorf("thought bubble radius %.3f/%.3f: %w", o.radius, o.trailRadius, ErrInvalidParameter)
	}
	if o.scale <= 0 {
		return nil, fmt.Errorf("thought bubble scale %.3f: %w", o.scale, ErrInvalidParameter)
	}

	st := Style{
		Stroke:        o.stroke,
		StrokeWidth:   o.strokeWidth,
		StrokeOpacity: 1,
		Fill:          o.fill,
		FillOpacity:   o.fillOpacity,
	}

	main := NewCircle(o.radius, st)
	main.SetName("bubble")

	trails := NewGroup("bubble-trail")
	b := &ThoughtBubble{main: main}
	for i, r := range TrailRadii(o.trailRadius) {
		c := NewCircle(r, st)
		c.SetName(fmt.Sprintf("bubble-trail-%d", i))
		// each step sits a little further out along the diagonal
		NextTo(c, main, Down.Add(Left), -0.1+0.1*float64(i))
		trails.Add(c)
		b.trail = append(b.trail, c)
	}

	b.Group = NewGroup("thought-bubble", main, trails)
	if o.scale != 1 {
		Scale(b, o.scale)
	}
	return b, nil
}

// Anchor is where dependent elements (the caption) are centered: the center
// of the main circle, wherever the bubble has been moved.
func (b *ThoughtBubble) Anchor() Vec { return b.main.Center }

func (b *ThoughtBubble) Main() *Circle { return b.main }

func (b *ThoughtBubble) Trail() []*Circle { return b.trail }
