package scene

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/config"
	"github.com/ivlev/relativity/internal/shape"
)

// State is a step of the driver's run
type State int

const (
	Configuring State = iota
	TitleStage
	IntroStage
	SpecialRelativityStage
	GeneralRelativityStage
	ConclusionStage
	Done
)

var stateNames = [...]string{
	Configuring:            "Configuring",
	TitleStage:             "Title",
	IntroStage:             "Intro",
	SpecialRelativityStage: "SpecialRelativity",
	GeneralRelativityStage: "GeneralRelativity",
	ConclusionStage:        "Conclusion",
	Done:                   "Done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Renderer plays batches and returns once they are fully shown
type Renderer interface {
	Configure(f config.Frame) error
	Play(ctx context.Context, b anim.Batch) error
}

// StageObserver is implemented by renderers that want to know where one
// stage ends and the next begins.
type StageObserver interface {
	BeginStage(name string)
}

// ImageLoader decodes an asset at the given pixel height
type ImageLoader interface {
	Load(path string, heightPx int) (image.Image, error)
}

type Options struct {
	Frame         config.Frame
	NarratorAsset string
	EndCardURL    string  // optional; shown as a QR code in the conclusion
	EndCardSize   float64 // frame units
	Log           io.Writer
}

type Driver struct {
	renderer Renderer
	loader   ImageLoader
	opts     Options

	states     []State
	canvas     *Canvas
	persistent map[shape.Shape]bool
}

func NewDriver(r Renderer, l ImageLoader, opts Options) *Driver {
	if opts.Log == nil {
		opts.Log = io.Discard
	}
	return &Driver{renderer: r, loader: l, opts: opts}
}

// Run plays the whole lecture. Every failure is fatal and stops the run in
// the state where it happened.
func (d *Driver) Run(ctx context.Context) error {
	d.states = nil
	d.canvas = NewCanvas()
	d.persistent = make(map[shape.Shape]bool)

	d.enter(Configuring)
	env, err := d.configure()
	if err != nil {
		return err
	}

	for _, st := range Stages() {
		d.enter(st.State)
		if err := d.runStage(ctx, st, env); err != nil {
			return err
		}
	}

	d.enter(Done)
	fmt.Fprintf(d.opts.Log, "[+++] Scene finished: %d states visited\n", len(d.states))
	return nil
}

func (d *Driver) configure() (Env, error) {
	f := d.opts.Frame
	if err := d.renderer.Configure(f); err != nil {
		return Env{}, fmt.Errorf("%w: configure: %w", ErrRenderEngine, err)
	}

	heightPx := int(math.Round(shape.NarratorHeight * shape.NarratorScale * f.PixelsPerUnit()))
	img, err := d.loader.Load(d.opts.NarratorAsset, heightPx)
	if err != nil {
		return Env{}, fmt.Errorf("narrator asset %s: %w", d.opts.NarratorAsset, err)
	}
	narrator, err := shape.NewNarratorFigure(img, shape.NarratorScale)
	if err != nil {
		return Env{}, fmt.Errorf("narrator asset %s: %w", d.opts.NarratorAsset, err)
	}

	env := Env{Box: shape.FrameBox(f.Width, f.Height), Narrator: narrator}
	shape.PlaceNarrator(narrator, env.Box)

	if d.opts.EndCardURL != "" {
		card, err := NewEndCard(d.opts.EndCardURL, d.opts.EndCardSize)
		if err != nil {
			return Env{}, err
		}
		env.EndCard = card
	}
	fmt.Fprintf(d.opts.Log, "[*] Narrator loaded from %s (%dpx)\n", d.opts.NarratorAsset, heightPx)
	return env, nil
}

func (d *Driver) runStage(ctx context.Context, st Stage, env Env) error {
	name := st.State.String()
	if obs, ok := d.renderer.(StageObserver); ok {
		obs.BeginStage(name)
	}

	script, err := st.Build(env)
	if err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}
	fmt.Fprintf(d.opts.Log, "[>] Stage %s: %d batches\n", name, len(script.Batches))

	for i, b := range script.Batches {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stage %s: %w: %w", name, ErrRenderEngine, err)
		}
		if err := d.canvas.Check(b); err != nil {
			return fmt.Errorf("stage %s batch %d: %w", name, i, err)
		}
		if err := d.renderer.Play(ctx, b); err != nil {
			return fmt.Errorf("stage %s: %w: %w", name, ErrRenderEngine, err)
		}
		if err := d.canvas.Apply(b); err != nil {
			return fmt.Errorf("stage %s batch %d: %w", name, i, err)
		}
	}

	for _, s := range script.Persistent {
		d.persistent[s] = true
	}
	var leaked []string
	for _, s := range d.canvas.Shapes() {
		if !d.persistent[s] {
			leaked = append(leaked, s.Name())
		}
	}
	if len(leaked) > 0 {
		return fmt.Errorf("stage %s: %w: %s", name, ErrCanvasLeak, strings.Join(leaked, ", "))
	}
	return nil
}

func (d *Driver) enter(s State) {
	d.states = append(d.states, s)
}

// States returns the states visited by the last run, in order
func (d *Driver) States() []State {
	return append([]State(nil), d.states...)
}

// Canvas is the driver's view of what is currently on screen
func (d *Driver) Canvas() *Canvas {
	return d.canvas
}
