package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ivlev/relativity/internal/asset"
	"github.com/ivlev/relativity/internal/config"
	"github.com/ivlev/relativity/internal/engine"
	"github.com/ivlev/relativity/internal/system"
	"github.com/ivlev/relativity/internal/video"
)

var buildVersion = "dev"

func main() {
	system.InitResourceLimits()

	dirs := []string{"input/audio", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	def := config.Default()
	configPtr := flag.String("config", "", "YAML file with settings; explicit flags override it")
	outputPtr := flag.String("output", "", "Video path (generated in output/ when empty)")
	fpsPtr := flag.Int("fps", def.FPS, "FPS")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Frames rasterized in parallel")
	assetsPtr := flag.String("assets", def.AssetsDir, "Assets directory")
	narratorPtr := flag.String("narrator", def.NarratorAsset, "Narrator asset (svg, pdf, png or jpg) relative to -assets")
	audioPtr := flag.String("audio", "", "Soundtrack path (default: newest file in input/audio/)")
	noAudioPtr := flag.Bool("no-audio", false, "Render without a soundtrack")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 - auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	statsPtr := flag.Bool("stats", false, "Print a performance report and append it to benchmark.log")
	timelinePtr := flag.String("timeline", "", "Also save the recorded timeline to this YAML file")
	endCardPtr := flag.String("end-card", "", "URL shown as a QR code at the end")

	flag.Parse()

	cfg := def
	cfg.Workers = *workersPtr
	cfg.Quality = 0
	if *configPtr != "" {
		if err := config.LoadFile(*configPtr, &cfg); err != nil {
			log.Fatalf("[-] Config error: %v", err)
		}
		fmt.Printf("[*] Settings loaded from %s\n", *configPtr)
	}

	// flags given on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output":
			cfg.OutputVideo = *outputPtr
		case "fps":
			cfg.FPS = *fpsPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "assets":
			cfg.AssetsDir = *assetsPtr
		case "narrator":
			cfg.NarratorAsset = *narratorPtr
		case "audio":
			cfg.AudioPath = *audioPtr
		case "quality":
			cfg.Quality = *qualityPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		case "timeline":
			cfg.TimelineOutput = *timelinePtr
		case "end-card":
			cfg.EndCardURL = *endCardPtr
		}
	})

	if cfg.OutputVideo == def.OutputVideo && *outputPtr == "" {
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("relativity_%s.mp4", timestamp))
	}

	if *noAudioPtr {
		cfg.AudioPath = ""
	} else if cfg.AudioPath == "" {
		latest, err := system.FindLatestAudio("input/audio")
		if err == nil {
			cfg.AudioPath = latest
			fmt.Printf("[*] Selected audio: %s\n", cfg.AudioPath)
		}
	}

	encoderName, _ := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Hardware acceleration detected: %s\n", encoderName)
	}
	cfg.VideoEncoder = encoderName

	if cfg.Quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			cfg.Quality = 75
		case "h264_nvenc":
			cfg.Quality = 28
		default:
			cfg.Quality = 23
		}
	}
	cfg.BuildVersion = buildVersion

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewVideoProject(&cfg, asset.NewLoader(cfg.AssetsDir), &video.FFmpegEncoder{})
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputVideo)
}

