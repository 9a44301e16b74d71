package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hukka/raytracer/internal/engine"
	"github.com/hukka/raytracer/internal/ppm"
	"github.com/hukka/raytracer/internal/scene"
	"github.com/hukka/raytracer/internal/ui"
)

func main() {
	scenePath := flag.String("scene", "", "path to scene JSON file (built-in scene when empty)")
	mode := flag.String("mode", "text", "output mode: text (P3 ppm), binary (P6 ppm), png or window")
	output := flag.String("out", "", "output file (stdout for ppm modes when empty)")
	width := flag.Int("width", 0, "image width (overrides scene settings)")
	height := flag.Int("height", 0, "image height (overrides scene settings)")
	samples := flag.Int("samples", 0, "samples per pixel (overrides scene settings)")
	depth := flag.Int("depth", 0, "max ray bounce depth (overrides scene settings)")
	seed := flag.Int64("seed", 0, "random seed for reproducible renders (0 = from clock)")
	workers := flag.Int("workers", 0, "render worker goroutines (0 = all CPUs)")
	flag.Parse()

	sc, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalln(err)
	}

	cfg := engine.ConfigFromSettings(sc.Settings)
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *samples > 0 {
		cfg.SamplesPerPx = *samples
	}
	if *depth > 0 {
		cfg.MaxDepth = *depth
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.Workers = *workers

	if *mode == "window" {
		if err := ui.Run(sc, cfg); err != nil {
			log.Fatalln("ui:", err)
		}
		return
	}

	if err := renderBatch(sc, cfg, *mode, *output); err != nil {
		log.Fatalln(err)
	}
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.Default(), nil
	}
	sc, err := scene.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return sc, nil
}

func renderBatch(sc *scene.Scene, cfg engine.RenderConfig, mode, output string) error {
	buf, err := engine.Render(sc, cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	switch mode {
	case "text", "binary":
		format := ppm.Text
		if mode == "binary" {
			format = ppm.Binary
		}
		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := ppm.Write(w, buf, format); err != nil {
			return fmt.Errorf("write ppm: %w", err)
		}
	case "png":
		if output == "" {
			output = "render.png"
		}
		if err := engine.SavePNG(output, buf); err != nil {
			return fmt.Errorf("save png: %w", err)
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	return nil
}
