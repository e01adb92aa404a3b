package soundtrack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Info describes a decoded soundtrack header
type Info struct {
	Path       string
	Duration   time.Duration
	SampleRate int
	Channels   int
}

// Probe decodes the stream header of a wav, mp3 or flac file and reports
// its length. Samples are not read.
func Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return Info{}, fmt.Errorf("soundtrack %s: unsupported format", path)
	}
	if err != nil {
		f.Close()
		return Info{}, fmt.Errorf("soundtrack %s: %w", path, err)
	}
	defer streamer.Close()

	return Info{
		Path:       path,
		Duration:   format.SampleRate.D(streamer.Len()),
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
	}, nil
}
