package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultTimelineDir is where timelines go when no path is given
const DefaultTimelineDir = "timelines"

// GenerateTimelinePath creates a timestamped timeline filename in dir
func GenerateTimelinePath(dir string) string {
	if dir == "" {
		dir = DefaultTimelineDir
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("timeline_%s.yaml", timestamp))
}

// FindLatestTimeline finds the most recent timeline file in dir
func FindLatestTimeline(dir string) (string, error) {
	if dir == "" {
		dir = DefaultTimelineDir
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read timelines directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(found) == 0 {
		return "", fmt.Errorf("no timeline files found in %s", dir)
	}

	// Newest first
	sort.Slice(found, func(i, j int) bool {
		return found[i].mod.After(found[j].mod)
	})

	return found[0].path, nil
}
