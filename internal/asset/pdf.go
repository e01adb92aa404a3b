package asset

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// renderPDF rasterizes the first page at the DPI that makes it heightPx tall
func renderPDF(path string, heightPx int) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if doc.NumPage() < 1 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	bound, err := doc.Bound(0)
	if err != nil {
		return nil, err
	}
	if bound.Dy() <= 0 {
		return nil, fmt.Errorf("pdf page has zero height")
	}

	// Bound is in points at 72 DPI
	dpi := 72 * float64(heightPx) / float64(bound.Dy())
	return doc.ImageDPI(0, dpi)
}
