package scene

import (
	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/camera"
	"github.com/ivlev/relativity/internal/shape"
)

// Env is what every stage may use: the visible frame box, the narrator
// placed at its anchor and the optional end card.
type Env struct {
	Box      shape.Box
	Narrator shape.Shape
	EndCard  shape.Shape
}

// Script is the output of a stage: the batches to play in order and the
// shapes it deliberately leaves on canvas for later stages.
type Script struct {
	Batches    []anim.Batch
	Persistent []shape.Shape
}

func (s *Script) play(b ...anim.Batch) { s.Batches = append(s.Batches, b...) }

// Stage builds a fresh Script each time it is run
type Stage struct {
	State State
	Build func(env Env) (Script, error)
}

// Stages returns the lecture in playing order
func Stages() []Stage {
	return []Stage{
		{TitleStage, buildTitle},
		{IntroStage, buildIntro},
		{SpecialRelativityStage, buildSpecialRelativity},
		{GeneralRelativityStage, buildGeneralRelativity},
		{ConclusionStage, buildConclusion},
	}
}

func buildTitle(env Env) (Script, error) {
	title := shape.NewText("Einstein's Relativity", 72).WithGradient(shape.Blue, shape.Green)
	title.SetName("title")
	subtitle := shape.NewText("A Modern Visualization", 36)
	subtitle.SetName("subtitle")
	shape.NextTo(subtitle, title, shape.Down, shape.DefaultBuff)

	var s Script
	s.play(
		anim.Play(anim.WriteOf(title), anim.FadeInFrom(subtitle, shape.Up)),
		anim.Wait(2),
		anim.FadeOutAll(title, subtitle),
	)
	return s, nil
}

func buildIntro(env Env) (Script, error) {
	var s Script
	s.play(anim.Play(anim.FadeInOf(env.Narrator)))

	talk, err := Narrate(env.Narrator, "Let's explore spacetime!", 2)
	if err != nil {
		return Script{}, err
	}
	s.play(talk...)
	s.Persistent = []shape.Shape{env.Narrator}
	return s, nil
}

func buildSpecialRelativity(env Env) (Script, error) {
	var s Script

	title := shape.NewText("Special Relativity", 48)
	title.SetName("sr-title")
	shape.ToEdge(title, shape.Up, env.Box)
	s.play(anim.Play(anim.WriteOf(title)))

	diagram, err := newSpacetimeDiagram()
	if err != nil {
		return Script{}, err
	}
	s.play(anim.Play(anim.CreateOf(diagram)))

	earth := newReferenceFrame("Earth", shape.Blue, shape.Left.Mul(2))
	ship := newReferenceFrame("Ship", shape.Red, shape.Right.Mul(2))
	s.play(anim.Play(anim.FadeInOf(earth), anim.FadeInOf(ship)))

	earthClock := newClock("earth-clock", shape.Blue)
	shipClock := newClock("ship-clock", shape.Red)
	shape.NextTo(earthClock, earth, shape.Up, shape.DefaultBuff)
	shape.NextTo(shipClock, ship, shape.Up, shape.DefaultBuff)
	s.play(anim.Play(anim.CreateOf(earthClock), anim.CreateOf(shipClock)))

	// the moving clock shrinks while the Earth clock keeps its size
	s.play(anim.PlayFor(2,
		anim.ScaleBy(earthClock, 1).With(anim.EaseInOutSine),
		anim.ScaleBy(shipClock, 0.8).With(anim.EaseInOutSine),
	))

	talk, err := Narrate(env.Narrator, "Time runs slower\nfor fast-moving objects!", 3)
	if err != nil {
		return Script{}, err
	}
	s.play(talk...)

	s.play(
		anim.FadeOutAll(earthClock, shipClock),
		anim.FadeOutAll(diagram, title),
		anim.FadeOutAll(earth, ship),
	)
	return s, nil
}

func buildGeneralRelativity(env Env) (Script, error) {
	var s Script
	s.play(anim.PlayFor(0, anim.ReorientTo(camera.Degrees(75, -45))))

	title := shape.NewText("General Relativity", 48).WithColor(shape.Green)
	title.SetName("gr-title")
	shape.ToEdge(title, shape.Up.Add(shape.Right), env.Box)
	s.play(anim.Play(anim.WriteOf(title)), anim.Wait(1))

	surface, err := newCurvedSpacetime()
	if err != nil {
		return Script{}, err
	}
	mass := shape.NewSphere(0.5, shape.Solid(shape.Yellow, 0.8))
	mass.SetName("mass")
	equation := shape.NewText("Gμν = (8πG / c^4) Tμν", 36)
	equation.SetName("field-equation")
	shape.ToEdge(equation, shape.Up, env.Box)
	s.play(anim.Play(anim.CreateOf(surface), anim.FadeInOf(mass), anim.WriteOf(equation)))

	waves := newGravitationalWaves()
	creates := make([]anim.Instruction, len(waves))
	for i, w := range waves {
		creates[i] = anim.CreateOf(w)
	}
	s.play(anim.PlayFor(3, creates...))

	horizon := shape.NewSphere(1, shape.Solid(shape.Black, 0.5))
	horizon.SetName("event-horizon")
	disk := newAccretionDisk()
	s.play(anim.Play(
		anim.TransformInto(mass, horizon),
		anim.ScaleBy(surface, 0.8),
		anim.CreateOf(disk),
	))

	photons := newPhotonOrbits()
	for _, p := range photons {
		s.play(anim.PlayFor(0.5, anim.CreateOf(p)))
	}

	talk, err := Narrate(env.Narrator, "Black holes warp spacetime\nso severely that light\ncannot escape!", 3)
	if err != nil {
		return Script{}, err
	}
	s.play(talk...)

	gone := []shape.Shape{title, surface, mass, equation, disk}
	gone = append(gone, waves...)
	gone = append(gone, photons...)
	s.play(anim.FadeOutAll(gone...))
	return s, nil
}

func buildConclusion(env Env) (Script, error) {
	var s Script

	text := shape.NewText("Relativity revolutionized our understanding\nof space, time, and gravity!", 36).
		WithGradient(shape.Blue, shape.Green)
	text.SetName("conclusion")
	s.play(anim.Play(anim.WriteOf(text)))

	shown := []shape.Shape{text}
	if env.EndCard != nil {
		shape.NextTo(env.EndCard, text, shape.Down, shape.DefaultBuff)
		s.play(anim.Play(anim.FadeInOf(env.EndCard)))
		shown = append(shown, env.EndCard)
	}

	s.play(anim.Wait(3), anim.FadeOutAll(shown...))
	return s, nil
}
