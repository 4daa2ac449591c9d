// Command cnctrace converts an image into a toolpath and writes it as JCode
// and/or a preview image.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cnc-tracer/internal/config"
	"cnc-tracer/internal/edge"
	"cnc-tracer/internal/emit"
	"cnc-tracer/internal/motion"
	"cnc-tracer/internal/pipeline"
	"cnc-tracer/internal/toolpath"
	"cnc-tracer/internal/version"
	"cnc-tracer/pkg/geometry"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imagePath := flag.String("image", "", "Path to the design image (PNG, JPEG, GIF, BMP, TIFF or WebP)")
	configPath := flag.String("config", config.DefaultPath(), "JSON config file")
	saveConfig := flag.Bool("save-config", false, "Write the effective settings back to -config")

	low := flag.Int("low", 50, "Canny low threshold")
	high := flag.Int("high", 150, "Canny high threshold")
	blur := flag.Int("blur", 5, "Gaussian blur kernel size (odd)")
	canvasSize := flag.Float64("canvas", 600, "Canvas size in output units")
	minPoints := flag.Int("min-points", 10, "Discard contours with fewer points")
	approx := flag.String("approx", "none", "Contour approximation: none or simple")
	topology := flag.Bool("topology", false, "Tag holes with their enclosing contour")
	simplify := flag.Float64("simplify", 0, "Douglas-Peucker tolerance in canvas units (0 = off)")
	workers := flag.Int("workers", 1, "Goroutines used to scale contours")
	closeContours := flag.Bool("close", true, "Return to each contour's start point")

	jcodePath := flag.String("jcode", "", "Write the toolpath as JCode to this file")
	previewPath := flag.String("preview", "", "Write a preview image to this file")
	speed := flag.Float64("speed", 5.0, "JCode tool head speed in units/s")
	scale := flag.Float64("scale", 1.0, "JCode machine units per canvas unit")
	pointDist := flag.Float64("point-dist", 0, "Minimum JCode waypoint spacing while cutting")
	startDelay := flag.Duration("start-delay", 0, "JCode pause before each pen down")
	endDelay := flag.Duration("end-delay", 0, "JCode pause before each pen up")
	verbose := flag.Bool("verbose", false, "List every kept contour")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("cnctrace"))
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: cnctrace -image <path> [-jcode out.jcode] [-preview out.png]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "low":
			cfg.LowThreshold = *low
		case "high":
			cfg.HighThreshold = *high
		case "blur":
			cfg.BlurKernel = *blur
		case "canvas":
			cfg.CanvasSize = *canvasSize
		case "min-points":
			cfg.MinPoints = *minPoints
		case "approx":
			cfg.Approximation = *approx
		case "topology":
			cfg.Topology = *topology
		case "simplify":
			cfg.Simplify = *simplify
		case "workers":
			cfg.Workers = *workers
		case "close":
			cfg.CloseContours = *closeContours
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config: %v", err)
	}

	if *saveConfig {
		if err := cfg.Save(*configPath); err != nil {
			log.Fatalf("Config: failed to save %s: %v", *configPath, err)
		}
		log.Printf("Config: saved to %s", *configPath)
	}

	reporter := emit.NewProgressReporter(nil)
	start := time.Now()

	res, err := pipeline.RunFile(context.Background(), *imagePath, cfg, reporter.Observe)
	if err != nil {
		var invalid *edge.InvalidImageError
		if errors.As(err, &invalid) {
			fmt.Fprintf(os.Stderr, "Could not load image: %v\n", err)
			os.Exit(2)
		}
		log.Fatalf("Pipeline: %v", err)
	}
	tp := res.Toolpath

	fmt.Printf("Loaded image: %.0fx%.0f pixels\n", res.Source.Width, res.Source.Height)
	fmt.Printf("Edge pixels: %d\n", res.EdgePixels)
	fmt.Printf("Contours: %d considered, %d kept (min %d points)\n", tp.Considered, tp.Emitted, cfg.MinPoints)

	if *verbose {
		reporter.Play(tp, func(i int, pl toolpath.Polyline) bool {
			b := pl.Bounds()
			fmt.Printf("  path %3d: %5d points, area %.0f px, %.0fx%.0f units\n", i+1, pl.Len(), pl.SourceArea, b.Width, b.Height)
			return true
		})
	}

	moves := motion.Plan(tp, motion.Options{Close: cfg.CloseContours})
	stats := motion.Summarize(moves, geometry.Point2D{})
	fmt.Printf("Strokes: %d  Cut distance: %.1f  Travel: %.1f  Pen lifts: %d\n",
		stats.Polylines, stats.CutDistance, stats.TravelDistance, stats.PenLifts)
	if stats.Polylines > 0 {
		b := stats.Bounds
		fmt.Printf("Extent: x %.1f..%.1f  y %.1f..%.1f\n", b.X, b.X+b.Width, b.Y, b.Y+b.Height)
	}

	if *jcodePath != "" {
		opts := emit.JCodeOptions{
			Speed:      *speed,
			Scale:      *scale,
			MinSegment: *pointDist,
			StartDelay: *startDelay,
			EndDelay:   *endDelay,
		}
		if err := emit.SaveJCode(*jcodePath, moves, opts); err != nil {
			log.Fatalf("JCode: %v", err)
		}
		fmt.Printf("Wrote JCode to %s\n", *jcodePath)
	}

	if *previewPath != "" {
		opts := emit.DefaultPreviewOptions()
		opts.CanvasSize = cfg.CanvasSize * 4 / 3
		if err := emit.SavePreview(*previewPath, tp, opts); err != nil {
			log.Fatalf("Preview: %v", err)
		}
		fmt.Printf("Wrote preview to %s\n", *previewPath)
	}

	fmt.Printf("Design complete: %d toolpaths in %s\n", tp.Len(), time.Since(start).Round(time.Millisecond))
}
