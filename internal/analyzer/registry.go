package analyzer

import (
	"fmt"
	"image"
)

// NewDetector creates a detector based on the specified variant
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "alpha", "":
		return NewAlphaDetector(), nil
	case "contrast":
		return NewContrastDetector(), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}

// ForImage picks the alpha detector for images with transparency and the
// contrast detector for opaque ones.
func ForImage(img image.Image) Detector {
	if Opaque(img) {
		return NewContrastDetector()
	}
	return NewAlphaDetector()
}
