package director

import "github.com/ivlev/relativity/internal/config"

// TimelineVersion is written into every exported timeline
const TimelineVersion = "1.0"

// Timeline is the full choreography of one run, without any pixels
type Timeline struct {
	Version string       `yaml:"version"`
	Frame   config.Frame `yaml:"frame"`
	Stages  []Stage      `yaml:"stages"`
}

// Stage groups the batches played while one chapter was active
type Stage struct {
	Name     string  `yaml:"name"`
	Start    float64 `yaml:"start"`    // Offset from the start of the video, seconds
	Duration float64 `yaml:"duration"` // Sum of the batch durations
	Batches  []Batch `yaml:"batches"`
}

// Batch is one set of instructions played together
type Batch struct {
	Start        float64 `yaml:"start"`
	Duration     float64 `yaml:"duration"`
	Instructions []Step  `yaml:"instructions,omitempty"`
}

// Step is one recorded instruction
type Step struct {
	Kind   string      `yaml:"kind"`
	Target string      `yaml:"target,omitempty"`
	Easing string      `yaml:"easing,omitempty"`
	Into   string      `yaml:"into,omitempty"`
	Factor float64     `yaml:"factor,omitempty"`
	Camera *CameraStep `yaml:"camera,omitempty"`
}

// CameraStep is a camera target in degrees, easier to read than radians
type CameraStep struct {
	Phi   float64 `yaml:"phi"`
	Theta float64 `yaml:"theta"`
}

// Duration is the total running time of the timeline
func (t *Timeline) Duration() float64 {
	if len(t.Stages) == 0 {
		return 0
	}
	last := t.Stages[len(t.Stages)-1]
	return last.Start + last.Duration
}

// StageNames lists the stages in the order they played
func (t *Timeline) StageNames() []string {
	names := make([]string, 0, len(t.Stages))
	for _, s := range t.Stages {
		names = append(names, s.Name)
	}
	return names
}
