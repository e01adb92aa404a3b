package anim

import (
	"github.com/ivlev/relativity/internal/camera"
	"github.com/ivlev/relativity/internal/shape"
)

// DefaultRunTime is the duration of a batch when a stage does not say
const DefaultRunTime = 1.0

// Kind names what an instruction does to its target
type Kind string

const (
	FadeIn    Kind = "fade_in"   // appear: opacity 0 → 1, optionally sliding in
	FadeOut   Kind = "fade_out"  // disappear: opacity 1 → 0, removed afterwards
	Create    Kind = "create"    // appear: outline drawn progressively
	Write     Kind = "write"     // appear: text revealed glyph by glyph
	Transform Kind = "transform" // morph target into the look of Into
	Scale     Kind = "scale"     // property delta: scale by Factor
	Reorient  Kind = "reorient"  // move the camera to Camera
)

// Appears reports whether the kind puts its target on canvas
func (k Kind) Appears() bool {
	return k == FadeIn || k == Create || k == Write
}

// Instruction is one animation inside a batch. Only the fields relevant to
// Kind are set.
type Instruction struct {
	Kind   Kind
	Target shape.Shape
	Easing Easing

	Into   shape.Shape         // Transform
	Factor float64             // Scale
	Shift  shape.Vec           // FadeIn/FadeOut: slide direction
	Camera *camera.Orientation // Reorient
}

// Batch is a set of instructions played together for Duration seconds. An
// empty batch is a hold.
type Batch struct {
	Instructions []Instruction
	Duration     float64
}

// Play builds a batch of the default run time
func Play(ins ...Instruction) Batch {
	return Batch{Instructions: ins, Duration: DefaultRunTime}
}

// PlayFor builds a batch with an explicit duration
func PlayFor(d float64, ins ...Instruction) Batch {
	return Batch{Instructions: ins, Duration: d}
}

// Wait holds the current frame for d seconds
func Wait(d float64) Batch {
	return Batch{Duration: d}
}

// Constructors

func FadeInOf(s shape.Shape) Instruction { return Instruction{Kind: FadeIn, Target: s} }

// FadeInFrom fades s in while sliding it along shift into its place
func FadeInFrom(s shape.Shape, shift shape.Vec) Instruction {
	return Instruction{Kind: FadeIn, Target: s, Shift: shift}
}

func FadeOutOf(s shape.Shape) Instruction { return Instruction{Kind: FadeOut, Target: s} }
func CreateOf(s shape.Shape) Instruction { return Instruction{Kind: Create, Target: s} }
func WriteOf(s shape.Shape) Instruction { return Instruction{Kind: Write, Target: s} }

// TransformInto morphs s so it ends looking like into; s stays the shape on
// canvas and into is never added.
func TransformInto(s, into shape.Shape) Instruction {
	return Instruction{Kind: Transform, Target: s, Into: into}
}

// ScaleBy grows or shrinks s about its center
func ScaleBy(s shape.Shape, k float64) Instruction {
	return Instruction{Kind: Scale, Target: s, Factor: k}
}

// ReorientTo moves the camera
func ReorientTo(o camera.Orientation) Instruction {
	return Instruction{Kind: Reorient, Camera: &o}
}

// With returns a copy of in using easing e
func (in Instruction) With(e Easing) Instruction {
	in.Easing = e
	return in
}

// FadeOutAll fades every shape out in one batch
func FadeOutAll(shapes ...shape.Shape) Batch {
	ins := make([]Instruction, 0, len(shapes))
	for _, s := range shapes {
		ins = append(ins, FadeOutOf(s))
	}
	return Play(ins...)
}
