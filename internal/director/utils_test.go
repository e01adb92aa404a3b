package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateTimelinePath(t *testing.T) {
	path := GenerateTimelinePath("")

	if !strings.HasPrefix(path, DefaultTimelineDir+string(filepath.Separator)) {
		t.Errorf("Path should be in %s: %s", DefaultTimelineDir, path)
	}
	if !strings.Contains(path, "timeline_") || !strings.HasSuffix(path, ".yaml") {
		t.Errorf("Path should be a timestamped yaml file: %s", path)
	}

	if got := GenerateTimelinePath("out"); filepath.Dir(got) != "out" {
		t.Errorf("Expected custom dir, got %s", got)
	}
}

func TestFindLatestTimeline(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		filepath.Join(dir, "timeline_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "timeline_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "timeline_2026-02-11_15-30-00.yaml"),
	}
	for i, f := range files {
		if err := os.WriteFile(f, []byte("version: \"1.0\""), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(f, modTime, modTime)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	latest, err := FindLatestTimeline(dir)
	if err != nil {
		t.Fatalf("FindLatestTimeline failed: %v", err)
	}
	if latest != files[len(files)-1] {
		t.Errorf("Expected latest to be %s, got %s", files[len(files)-1], latest)
	}

	if _, err := FindLatestTimeline(t.TempDir()); err == nil {
		t.Error("Expected error for an empty directory")
	}
}
