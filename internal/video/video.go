package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"io/fs"
	"os"
	"os/exec"
)

// Params describes the stream handed to ffmpeg
type Params struct {
	Width, Height int
	FPS           int
	OutputPath    string
	AudioPath     string // optional soundtrack, padded or cut to the video
	Encoder       string
	Quality       int
}

// Stream accepts raw frames until it is closed. Close finalizes the file;
// Abort kills the encoder and removes whatever it wrote.
type Stream interface {
	WriteFrame(img *image.RGBA) error
	Close() error
	Abort() error
}

type VideoEncoder interface {
	Start(ctx context.Context, p Params) (Stream, error)
}

type FFmpegEncoder struct {
	Binary string // defaults to "ffmpeg" on PATH
}

// Start launches ffmpeg reading rawvideo RGBA frames from stdin
func (e *FFmpegEncoder) Start(ctx context.Context, p Params) (Stream, error) {
	if p.Width <= 0 || p.Height <= 0 || p.FPS <= 0 {
		return nil, fmt.Errorf("invalid stream %dx%d@%d", p.Width, p.Height, p.FPS)
	}
	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}

	cctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(cctx, bin, buildFFmpegArgs(p)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s := &ffmpegStream{cmd: cmd, stdin: stdin, cancel: cancel, output: p.OutputPath, width: p.Width, height: p.Height}
	cmd.Stderr = &s.stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func buildFFmpegArgs(p Params) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
	}
	if p.AudioPath != "" {
		args = append(args, "-i", p.AudioPath, "-map", "0:v", "-map", "1:a", "-af", "apad", "-shortest", "-c:a", "aac")
	}

	encoder := p.Encoder
	if encoder == "" {
		encoder = "libx264"
	}
	args = append(args, "-pix_fmt", "yuv420p", "-c:v", encoder)

	// Quality depends on the encoder
	switch encoder {
	case "h264_videotoolbox":
		bitrate := p.Quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", p.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", p.Quality), "-preset", "medium")
	}

	return append(args, p.OutputPath)
}

type ffmpegStream struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	cancel context.CancelFunc
	output string
	stderr bytes.Buffer
	width  int
	height int
	frames int
	closed bool
}

func (s *ffmpegStream) WriteFrame(img *image.RGBA) error {
	if s.closed {
		return errors.New("write to closed stream")
	}
	if img.Bounds().Dx() != s.width || img.Bounds().Dy() != s.height {
		return fmt.Errorf("frame %v does not match stream %dx%d", img.Bounds(), s.width, s.height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w (%s)", err, s.stderr.String())
	}
	s.frames++
	return nil
}

// Close flushes stdin and waits for ffmpeg to finish the file
func (s *ffmpegStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	defer s.cancel()
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %v, output: %s", err, s.stderr.String())
	}
	return nil
}

// Abort kills ffmpeg and deletes the partial output file
func (s *ffmpegStream) Abort() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	s.stdin.Close()
	s.cmd.Wait() // killed, the exit error is expected
	return removePartial(s.output)
}

func removePartial(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove partial output: %w", err)
	}
	return nil
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
