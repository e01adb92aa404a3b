package scene

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/relativity/internal/shape"
)

const endCardPixels = 256

// NewEndCard renders url as a QR code, size frame units tall
func NewEndCard(url string, size float64) (*shape.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("end card size %.2f: %w", size, shape.ErrInvalidParameter)
	}
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code for %q: %w", url, err)
	}
	q.DisableBorder = true
	img := shape.NewImage(q.Image(endCardPixels), size)
	img.SetName("end-card")
	return img, nil
}
