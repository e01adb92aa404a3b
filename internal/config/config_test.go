package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relativity.yaml")
	data := "fps: 60\noutput: out/lecture.mp4\nstats: true\nend_card_url: https://example.com\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.FPS != 60 || cfg.OutputVideo != "out/lecture.mp4" || !cfg.ShowStats {
		t.Errorf("overlay not applied: %+v", cfg)
	}
	if cfg.EndCardURL != "https://example.com" {
		t.Errorf("end card url %q", cfg.EndCardURL)
	}
	// keys missing from the file keep their defaults
	if cfg.Workers != 4 || cfg.NarratorAsset != "narrator.svg" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "fps: [1, 2"},
		{"zero fps", "fps: 0"},
		{"negative workers", "workers: -1"},
		{"no narrator", "narrator_asset: \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			cfg := Default()
			if err := LoadFile(path, &cfg); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	cfg := Default()
	if err := LoadFile(filepath.Join(dir, "missing.yaml"), &cfg); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestDefaultFrame(t *testing.T) {
	f := DefaultFrame()
	if err := f.Validate(); err != nil {
		t.Fatalf("default frame invalid: %v", err)
	}
	if ppu := f.PixelsPerUnit(); ppu != 120 {
		t.Errorf("PixelsPerUnit = %v, want 120", ppu)
	}

	f.PixelHeight = 0
	if err := f.Validate(); err == nil {
		t.Error("Expected error for zero pixel height")
	}
}
