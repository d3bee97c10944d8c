// Command lifeview-snap runs a session headless for a number of
// generations and writes the canvas to a PNG file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"lifeview/internal/app"
	"lifeview/internal/core"
	"lifeview/internal/logging"
	_ "lifeview/internal/sims/briansbrain"
	_ "lifeview/internal/sims/elementary"
	_ "lifeview/internal/sims/life"
	"lifeview/internal/surface/raster"
	"lifeview/internal/view"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	gens := flag.Int("gens", 0, "generations to advance before the snapshot")
	out := flag.String("out", "lifeview.png", "PNG output path")
	zoom := flag.Int("zoom-steps", 0, "wheel notches to zoom around the canvas centre (negative zooms out)")
	asText := flag.Bool("text", false, "also print the grid to stdout")
	flag.Parse()
	if err := cfg.Load(flag.CommandLine); err != nil {
		log.Fatal(err)
	}
	cfg.Paused = true
	logger := logging.New(os.Stderr, cfg.Verbose)

	w, h := cfg.Geometry().CanvasSize()
	canvas := raster.New(w, h)
	defer canvas.Close()
	s, err := app.NewSession(*cfg, canvas, app.SessionOptions{Logger: logger})
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	for i := 0; i < *gens; i++ {
		s.Engine().Tick()
	}
	dir := view.ZoomIn
	if *zoom < 0 {
		dir = view.ZoomOut
	}
	for i := 0; i < abs(*zoom); i++ {
		s.Viewport().ZoomAt(float64(w)/2, float64(h)/2, dir)
	}
	if err := s.Redraw(); err != nil {
		log.Fatal(err)
	}
	if err := canvas.SavePNG(*out); err != nil {
		log.Fatal(err)
	}
	logger.Info("snapshot written", "path", *out, "generations", *gens, "scale", s.Viewport().Scale())
	if *asText {
		fmt.Print(core.Format(s.Engine()))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
