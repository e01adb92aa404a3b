package scene

import (
	"fmt"
	"math"

	"github.com/ivlev/relativity/internal/anim"
	"github.com/ivlev/relativity/internal/shape"
)

const (
	// NarrationBubbleScale shrinks the thought bubble next to the narrator
	NarrationBubbleScale = 0.7
	// CaptionSize is the font size of narrated text
	CaptionSize = 24
)

// Narrate shows text in a thought bubble above the narrator, holds it for
// hold seconds and takes both away again. A zero hold still appears and
// disappears; a negative one is rejected.
func Narrate(narrator shape.Shape, text string, hold float64) ([]anim.Batch, error) {
	if narrator == nil {
		return nil, fmt.Errorf("narration without narrator: %w", shape.ErrInvalidParameter)
	}
	if hold < 0 || math.IsNaN(hold) || math.IsInf(hold, 0) {
		return nil, fmt.Errorf("narration hold %.2f: %w", hold, shape.ErrInvalidParameter)
	}

	bubble, err := shape.NewThoughtBubble(shape.WithBubbleScale(NarrationBubbleScale))
	if err != nil {
		return nil, err
	}
	shape.NextTo(bubble, narrator, shape.Up, shape.DefaultBuff)

	caption := shape.NewText(text, CaptionSize)
	caption.SetName("caption")
	shape.MoveTo(caption, bubble.Anchor())

	batches := []anim.Batch{anim.Play(anim.CreateOf(bubble), anim.WriteOf(caption))}
	if hold > 0 {
		batches = append(batches, anim.Wait(hold))
	}
	return append(batches, anim.Play(anim.FadeOutOf(bubble), anim.FadeOutOf(caption))), nil
}
