package soundtrack

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeWAV writes a silent 16-bit mono PCM file of the given length
func writeWAV(t *testing.T, path string, rate, samples int) {
	t.Helper()
	data := samples * 2
	buf := make([]byte, 0, 44+data)
	le := binary.LittleEndian

	buf = append(buf, "RIFF"...)
	buf = le.AppendUint32(buf, uint32(36+data))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	buf = le.AppendUint32(buf, 16)
	buf = le.AppendUint16(buf, 1) // PCM
	buf = le.AppendUint16(buf, 1) // mono
	buf = le.AppendUint32(buf, uint32(rate))
	buf = le.AppendUint32(buf, uint32(rate*2))
	buf = le.AppendUint16(buf, 2)
	buf = le.AppendUint16(buf, 16)
	buf = append(buf, "data"...)
	buf = le.AppendUint32(buf, uint32(data))
	buf = append(buf, make([]byte, data)...)

	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestProbeWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.wav")
	writeWAV(t, path, 8000, 16000)

	info, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Duration != 2*time.Second {
		t.Errorf("duration %v, want 2s", info.Duration)
	}
	if info.SampleRate != 8000 || info.Channels != 1 {
		t.Errorf("format %d Hz x%d", info.SampleRate, info.Channels)
	}
}

func TestProbeErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Probe(filepath.Join(dir, "missing.wav")); err == nil {
		t.Error("Expected error for missing file")
	}

	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(txt); err == nil {
		t.Error("Expected error for unsupported format")
	}

	broken := filepath.Join(dir, "broken.wav")
	if err := os.WriteFile(broken, []byte("not a riff file"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(broken); err == nil {
		t.Error("Expected error for a corrupt wav")
	}
}
