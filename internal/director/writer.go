package director

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteTimeline writes a timeline to a YAML file, creating parent dirs
func WriteTimeline(t *Timeline, path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// ReadTimeline reads a timeline from a YAML file
func ReadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Timeline
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	if t.Version != TimelineVersion {
		return nil, fmt.Errorf("timeline %s has version %q, want %q", path, t.Version, TimelineVersion)
	}

	return &t, nil
}
