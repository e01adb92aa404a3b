package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/asset"
	"github.com/ivlev/relativity/internal/config"
	"github.com/ivlev/relativity/internal/director"
	"github.com/ivlev/relativity/internal/shape"
)

type fakeRenderer struct {
	configured int
	batches    int
	stages     []string
	failAt     int // 1-based batch index that fails, 0 never
	onStage    func(name string)
}

func (f *fakeRenderer) Configure(config.Frame) error {
	f.configured++
	return nil
}

func (f *fakeRenderer) Play(ctx context.Context, b anim.Batch) error {
	f.batches++
	if f.failAt > 0 && f.batches == f.failAt {
		return errors.New("encoder died")
	}
	return nil
}

func (f *fakeRenderer) BeginStage(name string) {
	f.stages = append(f.stages, name)
	if f.onStage != nil {
		f.onStage(name)
	}
}

type fakeLoader struct {
	requested int
}

func (l *fakeLoader) Load(path string, heightPx int) (image.Image, error) {
	if path != "narrator.svg" {
		return nil, fmt.Errorf("%s: %w", path, asset.ErrNotFound)
	}
	l.requested = heightPx
	img := image.NewNRGBA(image.Rect(0, 0, 120, 200))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 200, G: 200, B: 200, A: 255}), image.Point{}, draw.Src)
	return img, nil
}

func testOptions() Options {
	return Options{Frame: config.DefaultFrame(), NarratorAsset: "narrator.svg"}
}

var allStates = []State{
	Configuring, TitleStage, IntroStage, SpecialRelativityStage,
	GeneralRelativityStage, ConclusionStage, Done,
}

func TestRunVisitsStagesInOrder(t *testing.T) {
	r := &fakeRenderer{}
	loader := &fakeLoader{}
	d := NewDriver(r, loader, testOptions())

	for run := 0; run < 2; run++ {
		if err := d.Run(context.Background()); err != nil {
			t.Fatalf("run %d failed: %v", run, err)
		}
		if got := d.States(); !reflect.DeepEqual(got, allStates) {
			t.Errorf("run %d visited %v, want %v", run, got, allStates)
		}
	}

	want := []string{"Title", "Intro", "SpecialRelativity", "GeneralRelativity", "Conclusion"}
	if !reflect.DeepEqual(r.stages[:5], want) || !reflect.DeepEqual(r.stages[5:], want) {
		t.Errorf("stages %v", r.stages)
	}
	if r.configured != 2 {
		t.Errorf("Configure called %d times, want once per run", r.configured)
	}
	if loader.requested != 360 {
		t.Errorf("narrator requested at %dpx, want 360", loader.requested)
	}
	if d.Canvas().Len() != 1 {
		t.Errorf("only the narrator should stay on canvas, got %d shapes", d.Canvas().Len())
	}
}

func TestCanvasEnteringSpecialRelativity(t *testing.T) {
	r := &fakeRenderer{}
	d := NewDriver(r, &fakeLoader{}, testOptions())

	checked := false
	r.onStage = func(name string) {
		if name != SpecialRelativityStage.String() {
			return
		}
		checked = true
		shapes := d.Canvas().Shapes()
		if len(shapes) != 1 || shapes[0].Name() != "narrator" {
			names := make([]string, len(shapes))
			for i, s := range shapes {
				names[i] = s.Name()
			}
			t.Errorf("canvas entering %s holds %v", name, names)
		}
	}

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !checked {
		t.Error("SpecialRelativity stage was never entered")
	}
}

func TestRunInvalidAsset(t *testing.T) {
	r := &fakeRenderer{}
	opts := testOptions()
	opts.NarratorAsset = "missing.svg"
	d := NewDriver(r, &fakeLoader{}, opts)

	err := d.Run(context.Background())
	if !errors.Is(err, asset.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if got := d.States(); !reflect.DeepEqual(got, []State{Configuring}) {
		t.Errorf("visited %v, want only Configuring", got)
	}
	if r.batches != 0 {
		t.Errorf("%d batches played before the asset was loaded", r.batches)
	}
}

func TestRunWrapsRendererFailure(t *testing.T) {
	r := &fakeRenderer{failAt: 4}
	d := NewDriver(r, &fakeLoader{}, testOptions())

	err := d.Run(context.Background())
	if !errors.Is(err, ErrRenderEngine) {
		t.Fatalf("Expected ErrRenderEngine, got %v", err)
	}
	// Title plays three batches, so the fourth belongs to Intro
	if got := d.States(); got[len(got)-1] != IntroStage {
		t.Errorf("run stopped in %v", got[len(got)-1])
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDriver(&fakeRenderer{}, &fakeLoader{}, testOptions())
	err := d.Run(ctx)
	if !errors.Is(err, ErrRenderEngine) || !errors.Is(err, context.Canceled) {
		t.Errorf("Expected cancelled render failure, got %v", err)
	}
}

func TestRunWithEndCard(t *testing.T) {
	opts := testOptions()
	opts.EndCardURL = "https://example.com/relativity"
	opts.EndCardSize = 2

	rec := director.NewRecorder()
	if err := NewDriver(rec, &fakeLoader{}, opts).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	tl := rec.Timeline()
	last := tl.Stages[len(tl.Stages)-1]
	if last.Name != "Conclusion" {
		t.Fatalf("last stage %s", last.Name)
	}
	found := false
	for _, b := range last.Batches {
		for _, s := range b.Instructions {
			if s.Target == "end-card" && s.Kind == string(anim.FadeIn) {
				found = true
			}
		}
	}
	if !found {
		t.Error("Expected the end card to fade in during the conclusion")
	}
}

func TestRecordedTimeline(t *testing.T) {
	rec := director.NewRecorder()
	if err := NewDriver(rec, &fakeLoader{}, testOptions()).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	tl := rec.Timeline()
	if got := tl.StageNames(); len(got) != 5 || got[0] != "Title" || got[4] != "Conclusion" {
		t.Errorf("stage names %v", got)
	}

	// write 1 + fade in 1 at once, hold 2, fade out 1
	if title := tl.Stages[0]; math.Abs(title.Duration-4) > 1e-9 {
		t.Errorf("title lasts %.2fs, want 4s", title.Duration)
	}

	gr := tl.Stages[3]
	first := gr.Batches[0]
	if first.Duration != 0 || len(first.Instructions) != 1 || first.Instructions[0].Camera == nil {
		t.Errorf("general relativity should open with an instant reorient, got %+v", first)
	}
}

func TestNarrate(t *testing.T) {
	narrator := shape.NewRectangle(1, 2, shape.Outline(shape.White, 1))

	tests := []struct {
		name    string
		hold    float64
		batches int
		wantErr bool
	}{
		{"hold", 3, 3, false},
		{"zero hold", 0, 2, false},
		{"negative hold", -1, 0, true},
		{"nan hold", math.NaN(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches, err := Narrate(narrator, "Hello", tt.hold)
			if tt.wantErr {
				if !errors.Is(err, shape.ErrInvalidParameter) {
					t.Errorf("Expected ErrInvalidParameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Narrate failed: %v", err)
			}
			if len(batches) != tt.batches {
				t.Fatalf("got %d batches, want %d", len(batches), tt.batches)
			}

			appear := batches[0].Instructions
			if appear[0].Kind != anim.Create || appear[1].Kind != anim.Write {
				t.Errorf("first batch %v %v", appear[0].Kind, appear[1].Kind)
			}
			bubble := appear[0].Target.(*shape.ThoughtBubble)
			caption := appear[1].Target
			if d := caption.Bounds().Center().Sub(bubble.Anchor()).Len(); d > 1e-9 {
				t.Errorf("caption is %.3f away from the bubble anchor", d)
			}
			if bubble.Bounds().Min.Y < narrator.Bounds().Max.Y {
				t.Error("bubble should sit above the narrator")
			}
			for _, in := range batches[len(batches)-1].Instructions {
				if in.Kind != anim.FadeOut {
					t.Errorf("last batch has %v", in.Kind)
				}
			}
		})
	}
}

func TestCanvasRejectsUnknownTarget(t *testing.T) {
	c := NewCanvas()
	circle := shape.NewCircle(1, shape.Outline(shape.White, 1))

	if err := c.Apply(anim.Play(anim.ScaleBy(circle, 2))); !errors.Is(err, ErrNotOnCanvas) {
		t.Errorf("Expected ErrNotOnCanvas, got %v", err)
	}
	if err := c.Apply(anim.Play(anim.FadeInOf(circle), anim.ScaleBy(circle, 2))); err != nil {
		t.Errorf("shape introduced in the same batch should be accepted: %v", err)
	}
	if !c.Contains(circle) {
		t.Error("circle should be on canvas")
	}
	if err := c.Apply(anim.FadeOutAll(circle)); err != nil || c.Len() != 0 {
		t.Errorf("fade out left %d shapes (%v)", c.Len(), err)
	}
}

func TestCurvedSpacetimeHeight(t *testing.T) {
	s, err := newCurvedSpacetime()
	if err != nil {
		t.Fatal(err)
	}
	if z := s.Point(0, 0).Z; math.Abs(z-0.5) > 1e-9 {
		t.Errorf("height at origin %.3f, want 0.5", z)
	}
	if z := s.Point(2, 2).Z; z > 0.001 {
		t.Errorf("height at the corner %.4f should vanish", z)
	}
}

func TestPhotonOrbitsAreDistinct(t *testing.T) {
	orbits := newPhotonOrbits()
	seen := make(map[[2]float64]bool)
	for _, o := range orbits {
		p := o.(*shape.Curve).Points()[0]
		key := [2]float64{math.Round(p.X * 1e6), math.Round(p.Y * 1e6)}
		if seen[key] {
			t.Errorf("orbit %s starts where another does", o.Name())
		}
		seen[key] = true
	}
}

func TestStageLeavingShapesFails(t *testing.T) {
	d := NewDriver(&fakeRenderer{}, &fakeLoader{}, testOptions())
	d.canvas = NewCanvas()
	d.persistent = make(map[shape.Shape]bool)

	kept := shape.NewText("kept", 24)
	kept.SetName("kept")
	leaky := Stage{State: TitleStage, Build: func(Env) (Script, error) {
		return Script{
			Batches: []anim.Batch{
				anim.Play(anim.WriteOf(shape.NewText("forgotten", 24)), anim.FadeInOf(kept)),
				anim.Wait(1),
			},
			Persistent: []shape.Shape{kept},
		}, nil
	}}

	err := d.runStage(context.Background(), leaky, Env{})
	if !errors.Is(err, ErrCanvasLeak) {
		t.Fatalf("Expected ErrCanvasLeak, got %v", err)
	}
	if !strings.Contains(err.Error(), "text") || strings.Contains(err.Error(), "kept") {
		t.Errorf("error should name only the leaked shape: %v", err)
	}
}

func TestStageFadingEverythingPasses(t *testing.T) {
	d := NewDriver(&fakeRenderer{}, &fakeLoader{}, testOptions())
	d.canvas = NewCanvas()
	d.persistent = make(map[shape.Shape]bool)

	clean := Stage{State: TitleStage, Build: func(Env) (Script, error) {
		txt := shape.NewText("bye", 24)
		return Script{Batches: []anim.Batch{
			anim.Play(anim.WriteOf(txt)),
			anim.FadeOutAll(txt),
		}}, nil
	}}

	if err := d.runStage(context.Background(), clean, Env{}); err != nil {
		t.Errorf("runStage failed: %v", err)
	}
	if d.Canvas().Len() != 0 {
		t.Errorf("canvas holds %d shapes", d.Canvas().Len())
	}
}

func TestGeneralRelativityTitleInCorner(t *testing.T) {
	box := shape.FrameBox(16, 9)
	script, err := buildGeneralRelativity(Env{Box: box, Narrator: shape.NewRectangle(1, 2, shape.Outline(shape.White, 1))})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	var title shape.Shape
	for _, b := range script.Batches {
		for _, in := range b.Instructions {
			if in.Target != nil && in.Target.Name() == "gr-title" && in.Kind == anim.Write {
				title = in.Target
			}
		}
	}
	if title == nil {
		t.Fatal("general relativity title is never written")
	}

	b := title.Bounds()
	if math.Abs(b.Max.X-(box.Max.X-shape.EdgeBuff)) > 1e-9 || math.Abs(b.Max.Y-(box.Max.Y-shape.EdgeBuff)) > 1e-9 {
		t.Errorf("title bounds %+v, want its corner at the upper-right edge buffer", b)
	}
}
