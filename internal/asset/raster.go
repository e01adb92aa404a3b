package asset

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

func decodeRaster(path string, heightPx int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if b.Dy() == heightPx || b.Dy() == 0 {
		return img, nil
	}
	w := int(float64(b.Dx()) * float64(heightPx) / float64(b.Dy()))
	if w < 1 {
		w = 1
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, heightPx))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out, nil
}
