package engine

import (
	"fmt"
	"image/png"
	"os"

	"github.com/hukka/raytracer/internal/scene"
)

// RenderScene renders sc with a config derived from the given settings.
func RenderScene(sc *scene.Scene, settings scene.RenderSettings) (*ImageBuffer, error) {
	return Render(sc, ConfigFromSettings(settings))
}

// PreviewConfig shrinks a config to interactive quality: same aspect,
// fewer samples and shallower recursion, so the window stays responsive
// while the camera moves.
func PreviewConfig(cfg RenderConfig) RenderConfig {
	preview := cfg
	preview.SamplesPerPx = maxInt(1, cfg.SamplesPerPx/10)
	preview.MaxDepth = minInt(cfg.MaxDepth, 10)
	return preview
}

// SavePNG writes the buffer to a PNG file.
func SavePNG(path string, buf *ImageBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, buf.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
