package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ivlev/relativity/internal/asset"
	"github.com/ivlev/relativity/internal/config"
	"github.com/ivlev/relativity/internal/director"
	"github.com/ivlev/relativity/internal/engine"
	"github.com/ivlev/relativity/internal/scene"
)

func main() {
	def := config.Default()
	assetsPtr := flag.String("assets", def.AssetsDir, "Assets directory")
	narratorPtr := flag.String("narrator", def.NarratorAsset, "Narrator asset relative to -assets")
	fpsPtr := flag.Int("fps", def.FPS, "FPS used for the frame count")
	outputPtr := flag.String("output", "", "Timeline path (generated in timelines/ when empty)")
	flag.Parse()

	outputPath := *outputPtr
	if outputPath == "" {
		outputPath = director.GenerateTimelinePath(director.DefaultTimelineDir)
	}

	fmt.Println("=== Relativity Timeline ===")
	fmt.Printf("Output: %s\n\n", outputPath)

	fmt.Println("[1/2] Running the scene against the recorder...")
	rec := director.NewRecorder()
	driver := scene.NewDriver(rec, asset.NewLoader(*assetsPtr), scene.Options{
		Frame:         config.DefaultFrame(),
		NarratorAsset: *narratorPtr,
		Log:           os.Stdout,
	})
	if err := driver.Run(context.Background()); err != nil {
		log.Fatalf("[-] Scene failed: %v", err)
	}
	timeline := rec.Timeline()
	fmt.Printf("✓ Visited %v\n\n", driver.States())

	fmt.Println("[2/2] Writing YAML timeline...")
	if err := director.WriteTimeline(timeline, outputPath); err != nil {
		log.Fatalf("[-] Failed to write timeline: %v", err)
	}
	fmt.Printf("✓ Timeline saved to: %s\n\n", outputPath)

	fmt.Println("=== Timeline Summary ===")
	fmt.Printf("Version: %s\n", timeline.Version)
	fmt.Printf("Duration: %.2fs (%d frames at %d fps)\n",
		timeline.Duration(), engine.ExpectedFrames(timeline, *fpsPtr), *fpsPtr)
	for _, st := range timeline.Stages {
		fmt.Printf("  %-18s start %6.2fs  %5.2fs  %2d batches\n", st.Name, st.Start, st.Duration, len(st.Batches))
	}
}
