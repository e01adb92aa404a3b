package asset

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivlev/relativity/internal/analyzer"
)

// ErrNotFound is returned when an asset path does not resolve to a file
var ErrNotFound = errors.New("asset not found")

// trimPad keeps a few transparent pixels around trimmed content so
// anti-aliased edges survive.
const trimPad = 2

// Loader rasterizes image assets from a directory. SVG, PDF (first page),
// PNG and JPEG are supported.
type Loader struct {
	Dir  string
	Trim bool
}

func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir, Trim: true}
}

// Resolve joins relative paths onto the loader directory
func (l *Loader) Resolve(path string) string {
	if filepath.IsAbs(path) || l.Dir == "" {
		return path
	}
	return filepath.Join(l.Dir, path)
}

// Load rasterizes the asset at roughly heightPx pixels tall and trims its
// empty margins so layout works on the visible figure.
func (l *Loader) Load(path string, heightPx int) (image.Image, error) {
	if heightPx <= 0 {
		return nil, fmt.Errorf("asset %s: height %d px", path, heightPx)
	}
	full := l.Resolve(path)
	fi, err := os.Stat(full)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%s: %w", full, ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("asset %s: %w", full, err)
	case fi.IsDir():
		return nil, fmt.Errorf("%s is a directory: %w", full, ErrNotFound)
	}

	var img image.Image
	switch strings.ToLower(filepath.Ext(full)) {
	case ".svg":
		img, err = renderSVG(full, heightPx)
	case ".pdf":
		img, err = renderPDF(full, heightPx)
	case ".png", ".jpg", ".jpeg":
		img, err = decodeRaster(full, heightPx)
	default:
		return nil, fmt.Errorf("asset %s: unsupported format", full)
	}
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", full, err)
	}

	if !l.Trim {
		return img, nil
	}
	trimmed, err := analyzer.Trim(img, analyzer.ForImage(img), trimPad)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", full, err)
	}
	return trimmed, nil
}
