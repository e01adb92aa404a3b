package scene

import "errors"

var (
	// ErrRenderEngine wraps every failure reported by the renderer
	ErrRenderEngine = errors.New("render engine failure")
	// ErrCanvasLeak means a stage finished with shapes it did not fade out
	ErrCanvasLeak = errors.New("stage left shapes on canvas")
	// ErrNotOnCanvas means an instruction animates a shape that was never shown
	ErrNotOnCanvas = errors.New("shape is not on canvas")
)
