package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/camera"
	"github.com/ivlev/relativity/internal/config"
	"github.com/ivlev/relativity/internal/effects"
	"github.com/ivlev/relativity/internal/shape"
	"github.com/ivlev/relativity/internal/system"
)

var ErrNotConfigured = errors.New("renderer is not configured")

// FrameSink receives finished frames in presentation order. The frame is
// only valid until WriteFrame returns.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
}

// Raster draws every frame of every batch in software and streams them to
// a FrameSink.
type Raster struct {
	sink    FrameSink
	fps     int
	workers int

	frame      config.Frame
	background color.NRGBA
	configured bool

	cam    camera.Orientation
	order  []*item
	index  map[shape.Shape]*item
	frames int
}

func NewRaster(sink FrameSink, fps, workers int) *Raster {
	if workers < 1 {
		workers = 1
	}
	return &Raster{
		sink:    sink,
		fps:     fps,
		workers: workers,
		index:   make(map[shape.Shape]*item),
	}
}

// Configure sets the frame and camera. Calling it again with the same frame
// leaves the canvas untouched.
func (r *Raster) Configure(f config.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	bg, err := shape.ParseHex(f.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if r.configured && r.frame == f {
		return nil
	}
	r.frame = f
	r.background = bg
	r.cam = f.Camera
	r.configured = true
	return nil
}

// Frames is the number of frames written so far
func (r *Raster) Frames() int { return r.frames }

// OnCanvas reports whether s is currently drawn
func (r *Raster) OnCanvas(s shape.Shape) bool {
	_, ok := r.index[s]
	return ok
}

// Play renders round(d·fps) frames for the batch and commits its end state.
func (r *Raster) Play(ctx context.Context, b anim.Batch) error {
	if !r.configured {
		return ErrNotConfigured
	}
	if b.Duration < 0 || math.IsNaN(b.Duration) {
		return fmt.Errorf("batch duration %f", b.Duration)
	}

	p, err := r.prepare(b)
	if err != nil {
		return err
	}

	n := int(math.Round(b.Duration * float64(r.fps)))
	if err := r.renderFrames(ctx, p, n); err != nil {
		return err
	}

	r.commit(p)
	return nil
}

func (r *Raster) prepare(b anim.Batch) (*plan, error) {
	p := &plan{
		start:   make(map[*item]effects.Visual, len(r.order)),
		remove:  make(map[*item]bool),
		camFrom: r.cam,
		camTo:   r.cam,
	}
	for _, it := range r.order {
		p.start[it] = it.v
	}
	p.order = append(p.order, r.order...)

	for _, in := range b.Instructions {
		if in.Kind == anim.Reorient {
			if in.Camera == nil {
				return nil, fmt.Errorf("reorient without camera")
			}
			p.camTo = *in.Camera
			p.camEase = in.Easing
			continue
		}
		if in.Target == nil {
			return nil, fmt.Errorf("%s instruction without target", in.Kind)
		}

		eff, err := effects.For(in)
		if err != nil {
			return nil, err
		}

		it, ok := r.index[in.Target]
		if in.Kind.Appears() {
			if !ok {
				it = &item{s: in.Target}
				p.order = append(p.order, it)
			}
			p.start[it] = effects.Hidden()
		} else if !ok {
			return nil, fmt.Errorf("%s targets %s which is not on canvas", in.Kind, in.Target.Name())
		}

		if in.Kind == anim.FadeOut {
			p.remove[it] = true
		}
		p.tracks = append(p.tracks, track{target: it, eff: eff, easing: in.Easing})
	}
	return p, nil
}

// renderFrames rasterizes frames in chunks on a bounded worker group and
// writes each chunk in order before starting the next one.
func (r *Raster) renderFrames(ctx context.Context, p *plan, n int) error {
	rect := image.Rect(0, 0, r.frame.PixelWidth, r.frame.PixelHeight)
	chunk := r.workers * 2

	for first := 1; first <= n; first += chunk {
		last := first + chunk - 1
		if last > n {
			last = n
		}
		imgs := make([]*image.RGBA, last-first+1)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.workers)
		for i := first; i <= last; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img := system.GetImage(rect)
				newPainter(img, r.frame, r.background).paint(p.at(frameProgress(i, n)))
				imgs[i-first] = img
				return nil
			})
		}
		err := g.Wait()
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			for _, img := range imgs {
				system.PutImage(img)
			}
			return err
		}

		for j, img := range imgs {
			if err := r.sink.WriteFrame(img); err != nil {
				for _, rest := range imgs[j:] {
					system.PutImage(rest)
				}
				return fmt.Errorf("frame %d: %w", r.frames+1, err)
			}
			system.PutImage(img)
			r.frames++
		}
	}
	return nil
}

func (r *Raster) commit(p *plan) {
	end := p.at(1)
	r.cam = end.cam

	r.order = r.order[:0]
	for i, it := range p.order {
		if p.remove[it] {
			delete(r.index, it.s)
			continue
		}
		it.v = end.items[i].v
		r.order = append(r.order, it)
		r.index[it.s] = it
	}
}
