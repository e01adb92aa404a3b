package engine

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ivlev/relativity/internal/asset"
	"github.com/ivlev/relativity/internal/config"
	"github.com/ivlev/relativity/internal/director"
	"github.com/ivlev/relativity/internal/renderer"
	"github.com/ivlev/relativity/internal/scene"
	"github.com/ivlev/relativity/internal/soundtrack"
	"github.com/ivlev/relativity/internal/system"
	"github.com/ivlev/relativity/internal/video"
)

// VideoProject renders the lecture into a single video file
type VideoProject struct {
	Config  *config.Config
	Frame   config.Frame
	Loader  *asset.Loader
	Encoder video.VideoEncoder
}

func NewVideoProject(cfg *config.Config, loader *asset.Loader, ve video.VideoEncoder) *VideoProject {
	return &VideoProject{
		Config:  cfg,
		Frame:   config.DefaultFrame(),
		Loader:  loader,
		Encoder: ve,
	}
}

func (p *VideoProject) options() scene.Options {
	return scene.Options{
		Frame:         p.Frame,
		NarratorAsset: p.Config.NarratorAsset,
		EndCardURL:    p.Config.EndCardURL,
		EndCardSize:   p.Config.EndCardSize,
		Log:           os.Stdout,
	}
}

// Record runs the scene against the timeline recorder. Nothing is drawn, so
// it doubles as a fast check of the asset and the stage scripts.
func (p *VideoProject) Record(ctx context.Context) (*director.Timeline, error) {
	opts := p.options()
	opts.Log = nil
	rec := director.NewRecorder()
	if err := scene.NewDriver(rec, p.Loader, opts).Run(ctx); err != nil {
		return nil, err
	}
	return rec.Timeline(), nil
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()

	timeline, err := p.Record(ctx)
	if err != nil {
		return err
	}
	if p.Config.TimelineOutput != "" {
		if err := director.WriteTimeline(timeline, p.Config.TimelineOutput); err != nil {
			return fmt.Errorf("write timeline: %w", err)
		}
		fmt.Printf("[*] Timeline saved: %s\n", p.Config.TimelineOutput)
	}

	want := ExpectedFrames(timeline, p.Config.FPS)
	sceneDur := float64(want) / float64(p.Config.FPS)

	if p.Config.AudioPath != "" {
		info, err := soundtrack.Probe(p.Config.AudioPath)
		if err != nil {
			return fmt.Errorf("soundtrack %s: %w", p.Config.AudioPath, err)
		}
		fmt.Printf("[*] Soundtrack: %s (%.2fs)\n", info.Path, info.Duration.Seconds())
		if note := fitSoundtrack(info.Duration.Seconds(), sceneDur); note != "" {
			fmt.Printf("[!] %s\n", note)
		}
	}

	fmt.Println("--- [PROJECT: RELATIVITY] ---")
	fmt.Printf("[*] Scene: %d stages | %.2fs | %d frames\n", len(timeline.Stages), sceneDur, want)
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | Workers: %d\n",
		p.Frame.PixelWidth, p.Frame.PixelHeight, p.Config.FPS, p.Config.Workers)
	fmt.Printf("[*] Encoder: %s\n", p.Config.VideoEncoder)
	fmt.Println("-----------------------------")

	stream, err := p.Encoder.Start(ctx, video.Params{
		Width:      p.Frame.PixelWidth,
		Height:     p.Frame.PixelHeight,
		FPS:        p.Config.FPS,
		OutputPath: p.Config.OutputVideo,
		AudioPath:  p.Config.AudioPath,
		Encoder:    p.Config.VideoEncoder,
		Quality:    p.Config.Quality,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", scene.ErrRenderEngine, err)
	}

	renderStart := time.Now()
	raster := renderer.NewRaster(stream, p.Config.FPS, p.Config.Workers)
	runErr := scene.NewDriver(raster, p.Loader, p.options()).Run(ctx)
	renderTime := time.Since(renderStart)

	// only a run that reached Done may leave a video behind
	if runErr != nil {
		if err := stream.Abort(); err != nil {
			fmt.Printf("[!] Could not abort encoder: %v\n", err)
		}
		return runErr
	}

	encodeStart := time.Now()
	if err := stream.Close(); err != nil {
		os.Remove(p.Config.OutputVideo)
		return fmt.Errorf("%w: %w", scene.ErrRenderEngine, err)
	}
	encodeTime := time.Since(encodeStart)

	if got := raster.Frames(); got != want {
		fmt.Printf("[!] Rendered %d frames, timeline expects %d\n", got, want)
	}

	if p.Config.ShowStats {
		p.report(reportStats{
			frames: raster.Frames(),
			total:  time.Since(startTime),
			render: renderTime,
			encode: encodeTime,
		})
	}
	return nil
}

// ExpectedFrames is the number of frames the renderer writes for a timeline:
// every batch is rounded to whole frames on its own.
func ExpectedFrames(t *director.Timeline, fps int) int {
	n := 0
	for _, st := range t.Stages {
		for _, b := range st.Batches {
			n += int(math.Round(b.Duration * float64(fps)))
		}
	}
	return n
}

// fitSoundtrack describes what ffmpeg will do to a soundtrack that does not
// match the scene length: short tracks are padded with silence, long ones
// are cut at the last frame.
func fitSoundtrack(audio, scene float64) string {
	const tolerance = 0.05
	switch {
	case audio < scene-tolerance:
		return fmt.Sprintf("Soundtrack is %.2fs shorter than the scene, padding with silence", scene-audio)
	case audio > scene+tolerance:
		return fmt.Sprintf("Soundtrack is %.2fs longer than the scene, it will be cut", audio-scene)
	}
	return ""
}

type reportStats struct {
	frames int
	total  time.Duration
	render time.Duration
	encode time.Duration
}

func (p *VideoProject) report(st reportStats) {
	fps := float64(st.frames) / st.total.Seconds()
	host := system.CollectHostStats()

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Host: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoder flush: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, host, st.total.Seconds(), st.render.Seconds(), st.encode.Seconds(), fps,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Output: %s | Frames: %d | Workers: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Config.OutputVideo,
		st.frames,
		p.Config.Workers,
		st.total.Seconds(),
		st.render.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Could not write benchmark.log: %v\n", err)
	}
}
