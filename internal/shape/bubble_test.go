package shape

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearVec(a, b Vec) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestThoughtBubbleTrailRadii(t *testing.T) {
	bases := []float64{0.15, 0.05, 1.0, 3.3}

	for _, r := range bases {
		b, err := NewThoughtBubble(WithBubbleRadius(BubbleRadius, r))
		if err != nil {
			t.Fatalf("NewThoughtBubble(trail=%v) failed: %v", r, err)
		}

		trail := b.Trail()
		if len(trail) != TrailCount {
			t.Fatalf("Expected %d trailing circles, got %d", TrailCount, len(trail))
		}

		for i, c := range trail {
			want := r * (1 - 0.2*float64(i))
			if !near(c.Radius, want) {
				t.Errorf("trail=%v: circle %d radius %f, want %f", r, i, c.Radius, want)
			}
			if i > 0 && c.Radius >= trail[i-1].Radius {
				t.Errorf("trail=%v: radii not strictly decreasing at %d", r, i)
			}
		}
	}
}

func TestThoughtBubbleDefaultSchedule(t *testing.T) {
	b, err := NewThoughtBubble()
	if err != nil {
		t.Fatalf("NewThoughtBubble failed: %v", err)
	}

	for i, c := range b.Trail() {
		want := 0.15 - float64(i)*0.03
		if !near(c.Radius, want) {
			t.Errorf("circle %d radius %f, want %f", i, c.Radius, want)
		}
	}
	if !near(b.Main().Radius, BubbleRadius) {
		t.Errorf("main radius %f, want %f", b.Main().Radius, BubbleRadius)
	}
}

func TestThoughtBubbleTrailsDiagonally(t *testing.T) {
	b, err := NewThoughtBubble()
	if err != nil {
		t.Fatalf("NewThoughtBubble failed: %v", err)
	}

	want := []Vec{{-0.75, -0.75}, {-0.82, -0.82}, {-0.89, -0.89}}
	for i, c := range b.Trail() {
		if !nearVec(c.Center, want[i]) {
			t.Errorf("circle %d at %+v, want %+v", i, c.Center, want[i])
		}
	}
}

func TestThoughtBubbleAnchorFollowsShape(t *testing.T) {
	b, err := NewThoughtBubble()
	if err != nil {
		t.Fatalf("NewThoughtBubble failed: %v", err)
	}

	if !nearVec(b.Anchor(), b.Main().Center) {
		t.Fatalf("anchor %+v is not the main center %+v", b.Anchor(), b.Main().Center)
	}

	b.Shift(Vec{2, 3})
	if !nearVec(b.Anchor(), Vec{2, 3}) {
		t.Errorf("after shift anchor = %+v, want {2 3}", b.Anchor())
	}

	pivot := b.Bounds().Center()
	before := b.Anchor()
	Scale(b, 0.7)
	want := before.ScaleAbout(0.7, pivot)
	if !nearVec(b.Anchor(), want) {
		t.Errorf("after scale anchor = %+v, want %+v", b.Anchor(), want)
	}
	if !nearVec(b.Anchor(), b.Main().Center) {
		t.Errorf("anchor drifted from the main circle center")
	}

	ref := NewRectangle(1, 2, Outline(White, 1))
	NextTo(b, ref, Up, DefaultBuff)
	if !nearVec(b.Anchor(), b.Main().Center) {
		t.Errorf("anchor drifted after NextTo")
	}
}

func TestThoughtBubbleScaleOption(t *testing.T) {
	b, err := NewThoughtBubble(WithBubbleScale(0.7))
	if err != nil {
		t.Fatalf("NewThoughtBubble failed: %v", err)
	}
	if !near(b.Main().Radius, BubbleRadius*0.7) {
		t.Errorf("main radius %f, want %f", b.Main().Radius, BubbleRadius*0.7)
	}
	if !near(b.Trail()[0].Radius, TrailRadius*0.7) {
		t.Errorf("first trail radius %f, want %f", b.Trail()[0].Radius, TrailRadius*0.7)
	}
}

func TestThoughtBubbleStyleOptions(t *testing.T) {
	b, err := NewThoughtBubble(WithBubbleStroke(Blue, 2), WithBubbleFill(Black, 0.5))
	if err != nil {
		t.Fatalf("NewThoughtBubble failed: %v", err)
	}

	want := Style{Stroke: Blue, StrokeWidth: 2, StrokeOpacity: 1, Fill: Black, FillOpacity: 0.5}
	leaves := Leaves(b)
	if len(leaves) != 1+TrailCount {
		t.Fatalf("bubble has %d circles, want %d", len(leaves), 1+TrailCount)
	}
	for _, c := range leaves {
		if c.Style() != want {
			t.Errorf("%s style %+v, want %+v", c.Name(), c.Style(), want)
		}
	}
}

func TestThoughtBubbleInvalid(t *testing.T) {
	tests := []struct {
		name string
		opt  BubbleOption
	}{
		{"negative main", WithBubbleRadius(-0.7, 0.15)},
		{"zero trail", WithBubbleRadius(0.7, 0)},
		{"negative scale", WithBubbleScale(-1)},
		{"zero scale", WithBubbleScale(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewThoughtBubble(tt.opt)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
