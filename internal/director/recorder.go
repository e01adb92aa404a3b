package director

import (
	"context"
	"fmt"
	"math"

	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/config"
)

// Recorder is a renderer that draws nothing: it logs every batch into a
// Timeline so a run can be inspected or diffed without ffmpeg.
type Recorder struct {
	timeline   Timeline
	clock      float64
	configured bool
}

func NewRecorder() *Recorder {
	return &Recorder{timeline: Timeline{Version: TimelineVersion}}
}

func (r *Recorder) Configure(f config.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	r.timeline.Frame = f
	r.configured = true
	return nil
}

// BeginStage opens a new stage; following batches are recorded under it
func (r *Recorder) BeginStage(name string) {
	r.timeline.Stages = append(r.timeline.Stages, Stage{Name: name, Start: r.clock})
}

func (r *Recorder) Play(ctx context.Context, b anim.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.configured {
		return fmt.Errorf("recorder is not configured")
	}
	if b.Duration < 0 || math.IsNaN(b.Duration) {
		return fmt.Errorf("batch duration %f", b.Duration)
	}
	if len(r.timeline.Stages) == 0 {
		r.BeginStage("unnamed")
	}

	entry := Batch{Start: r.clock, Duration: b.Duration}
	for _, in := range b.Instructions {
		entry.Instructions = append(entry.Instructions, stepOf(in))
	}

	st := &r.timeline.Stages[len(r.timeline.Stages)-1]
	st.Batches = append(st.Batches, entry)
	st.Duration += b.Duration
	r.clock += b.Duration
	return nil
}

// Timeline returns what has been recorded so far
func (r *Recorder) Timeline() *Timeline {
	return &r.timeline
}

func stepOf(in anim.Instruction) Step {
	s := Step{Kind: string(in.Kind), Factor: in.Factor}
	if in.Easing != "" {
		s.Easing = string(in.Easing)
	}
	if in.Target != nil {
		s.Target = in.Target.Name()
	}
	if in.Into != nil {
		s.Into = in.Into.Name()
	}
	if in.Camera != nil {
		s.Camera = &CameraStep{
			Phi:   round(in.Camera.Phi * 180 / math.Pi),
			Theta: round(in.Camera.Theta * 180 / math.Pi),
		}
	}
	return s
}

func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
