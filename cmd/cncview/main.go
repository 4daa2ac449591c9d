// Command cncview is a virtual CNC machine: it turns an image into a
// toolpath and animates the tool drawing it.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"cnc-tracer/internal/config"
	"cnc-tracer/internal/edge"
	"cnc-tracer/internal/motion"
	"cnc-tracer/internal/pipeline"
	"cnc-tracer/internal/version"
	"cnc-tracer/ui/simulator"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

const appTitle = "Virtual CNC Machine - Design Generator"

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	imagePath := flag.String("image", "", "Design image; a file dialog opens when empty")
	configPath := flag.String("config", config.DefaultPath(), "JSON config file")
	delay := flag.Duration("delay", 0, "Pause after each tool move, e.g. 2ms")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("cncview"))
		return
	}
	log.Printf("Starting %s", version.String("cncview"))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	a := app.New()
	a.Settings().SetTheme(&simulator.WorkshopTheme{})
	w := a.NewWindow(appTitle)

	// Show the whole canvas with a margin, like an 800px window around a 600 unit design.
	sim := simulator.New(800, cfg.CanvasSize*4/3, *delay)
	w.SetContent(sim.Content())
	w.Resize(fyne.NewSize(820, 860))

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(cancel)

	run := func(img image.Image) {
		go generate(ctx, sim, img, cfg)
	}

	if *imagePath != "" {
		img, err := edge.Load(*imagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing image: %v\n", err)
			sim.SetStatus(fmt.Sprintf("Error: %v", err))
		} else {
			log.Printf("Viewer: selected %s", *imagePath)
			run(img)
		}
	} else {
		w.Show()
		chooseImage(w, sim, run)
	}

	w.ShowAndRun()
}

// chooseImage opens a file dialog and decodes the selected design.
func chooseImage(w fyne.Window, sim *simulator.Simulator, run func(image.Image)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			sim.SetStatus("No file selected")
			return
		}
		defer reader.Close()
		log.Printf("Viewer: selected %s", reader.URI().Path())

		img, err := edge.Decode(reader)
		if err != nil {
			sim.SetStatus(fmt.Sprintf("Error: %v", err))
			dialog.ShowError(err, w)
			return
		}
		run(img)
	}, w)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fd.Show()
}

// generate runs the pipeline and animates the result.
func generate(ctx context.Context, sim *simulator.Simulator, img image.Image, cfg config.Config) {
	sim.Clear()
	res, err := pipeline.Run(ctx, img, cfg, func(p pipeline.Progress) {
		log.Printf("Pipeline: %s: %s", p.Stage, p.Message)
		sim.SetStatus(p.Message)
	})
	if err != nil {
		log.Printf("Viewer: %v", err)
		sim.SetStatus(fmt.Sprintf("Error: %v", err))
		return
	}

	moves := motion.Plan(res.Toolpath, motion.Options{Close: cfg.CloseContours})
	drawn := sim.Run(ctx, res.Toolpath, moves)
	log.Printf("Viewer: drew %d of %d contours", drawn, res.Toolpath.Considered)
}
