package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/relativity/internal/camera"
)

type Config struct {
	OutputVideo    string  `yaml:"output"`
	FPS            int     `yaml:"fps"`
	Workers        int     `yaml:"workers"`
	AssetsDir      string  `yaml:"assets_dir"`
	NarratorAsset  string  `yaml:"narrator_asset"`
	AudioPath      string  `yaml:"audio"`
	VideoEncoder   string  `yaml:"video_encoder"`
	Quality        int     `yaml:"quality"`
	ShowStats      bool    `yaml:"stats"`
	TimelineOutput string  `yaml:"timeline_output"`
	EndCardURL     string  `yaml:"end_card_url"`
	EndCardSize    float64 `yaml:"end_card_size"`
	BuildVersion   string  `yaml:"-"`
}

// Default returns the invocation defaults used by the CLI flags
func Default() Config {
	return Config{
		OutputVideo:   "relativity.mp4",
		FPS:           30,
		Workers:       4,
		AssetsDir:     "assets",
		NarratorAsset: "narrator.svg",
		Quality:       20,
		EndCardSize:   2,
	}
}

// LoadFile overlays the keys present in a YAML file onto cfg
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.NarratorAsset == "" {
		return fmt.Errorf("narrator asset is not set")
	}
	return nil
}

// Frame is the fixed rendering setup sent to a renderer before any stage
type Frame struct {
	Width       float64            `yaml:"width"`
	Height      float64            `yaml:"height"`
	PixelWidth  int                `yaml:"pixel_width"`
	PixelHeight int                `yaml:"pixel_height"`
	Background  string             `yaml:"background"`
	Camera      camera.Orientation `yaml:"camera"`
}

func DefaultFrame() Frame {
	return Frame{
		Width:       16,
		Height:      9,
		PixelWidth:  1920,
		PixelHeight: 1080,
		Background:  "#1a1a1a",
		Camera:      camera.Degrees(70, -30),
	}
}

// PixelsPerUnit is the raster scale of one frame unit
func (f Frame) PixelsPerUnit() float64 {
	return float64(f.PixelHeight) / f.Height
}

func (f Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 || f.PixelWidth <= 0 || f.PixelHeight <= 0 {
		return fmt.Errorf("invalid frame %gx%g units at %dx%d px", f.Width, f.Height, f.PixelWidth, f.PixelHeight)
	}
	return nil
}
