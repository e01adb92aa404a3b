package engine

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/relativity/internal/asset"
	"github.com/ivlev/relativity/internal/config"
	"github.com/ivlev/relativity/internal/scene"
	"github.com/ivlev/relativity/internal/video"
)

var errDiskFull = errors.New("disk full")

type fakeStream struct {
	written int
	failAt  int
	closed  bool
	aborted bool
}

func (s *fakeStream) WriteFrame(img *image.RGBA) error {
	if s.failAt > 0 && s.written+1 == s.failAt {
		return errDiskFull
	}
	s.written++
	return nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

func (s *fakeStream) Abort() error {
	s.aborted = true
	return nil
}

type fakeEncoder struct {
	stream *fakeStream
	params video.Params
}

func (e *fakeEncoder) Start(ctx context.Context, p video.Params) (video.Stream, error) {
	e.params = p
	return e.stream, nil
}

func smallProject(t *testing.T, enc video.VideoEncoder) *VideoProject {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "narrator.svg"), []byte(narratorSVG), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.FPS = 4
	cfg.Workers = 2
	cfg.OutputVideo = filepath.Join(dir, "out.mp4")

	p := NewVideoProject(&cfg, asset.NewLoader(dir), enc)
	p.Frame.PixelWidth, p.Frame.PixelHeight = 160, 90
	return p
}

func TestRunAbortsEncoderOnFailure(t *testing.T) {
	enc := &fakeEncoder{stream: &fakeStream{failAt: 5}}
	p := smallProject(t, enc)

	err := p.Run(context.Background())
	if !errors.Is(err, scene.ErrRenderEngine) || !errors.Is(err, errDiskFull) {
		t.Fatalf("Expected wrapped render failure, got %v", err)
	}
	if !enc.stream.aborted {
		t.Error("Expected the encoder to be aborted")
	}
	if enc.stream.closed {
		t.Error("a failed run must not finalize the video")
	}
	if enc.stream.written != 4 {
		t.Errorf("wrote %d frames before the failure, want 4", enc.stream.written)
	}
}

func TestRunClosesEncoderOnSuccess(t *testing.T) {
	enc := &fakeEncoder{stream: &fakeStream{}}
	p := smallProject(t, enc)

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !enc.stream.closed || enc.stream.aborted {
		t.Errorf("closed=%v aborted=%v, want a finalized stream", enc.stream.closed, enc.stream.aborted)
	}
	if enc.params.Width != 160 || enc.params.FPS != 4 {
		t.Errorf("encoder started with %+v", enc.params)
	}

	tl, err := p.Record(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := ExpectedFrames(tl, 4); enc.stream.written != want {
		t.Errorf("wrote %d frames, timeline expects %d", enc.stream.written, want)
	}
}
