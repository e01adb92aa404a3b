package asset

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 200">
  <rect x="25" y="50" width="50" height="100" fill="#58c4dd"/>
</svg>`

func TestLoadSVGTrimsMargins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "figure.svg"), []byte(testSVG), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := NewLoader(dir).Load("figure.svg", 200)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	b := img.Bounds()
	// 50x100 rect plus the trim padding on each side
	if b.Dx() < 50 || b.Dx() > 56 || b.Dy() < 100 || b.Dy() > 106 {
		t.Errorf("trimmed size %dx%d, want about 50x100", b.Dx(), b.Dy())
	}
}

func TestLoadUntrimmedSVG(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "figure.svg"), []byte(testSVG), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)
	l.Trim = false
	img, err := l.Load("figure.svg", 200)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 100, 200) {
		t.Errorf("bounds %v, want the full viewBox at 200 px", img.Bounds())
	}
}

func TestLoadPNGScalesToHeight(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 40, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.NRGBA{G: 200, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "figure.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	l := NewLoader(dir)
	l.Trim = false
	img, err := l.Load("figure.png", 160)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 160 {
		t.Errorf("scaled bounds %v", img.Bounds())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(dir)

	if _, err := l.Load("missing.svg", 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a missing file, got %v", err)
	}
	if _, err := l.Load(".", 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a directory, got %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load("notes.txt", 100); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
	if _, err := l.Load("notes.txt", 0); err == nil {
		t.Error("Expected error for zero height")
	}

	// a regular file used as a directory fails stat with ENOTDIR, which
	// is an I/O problem rather than a missing asset
	if _, err := l.Load("notes.txt/narrator.svg", 100); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Expected stat error passed through, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	l := NewLoader("assets")
	if got := l.Resolve("narrator.svg"); got != filepath.Join("assets", "narrator.svg") {
		t.Errorf("Resolve relative = %s", got)
	}
	if got := l.Resolve("/tmp/x.svg"); got != "/tmp/x.svg" {
		t.Errorf("Resolve absolute = %s", got)
	}
}
