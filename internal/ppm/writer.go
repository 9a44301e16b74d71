// Package ppm serializes rendered image buffers as portable pixel maps,
// in the plain text (P3) or raw binary (P6) encoding.
package ppm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hukka/raytracer/internal/engine"
)

// Format selects the pixel-map encoding.
type Format int

const (
	// Text is the human-readable P3 encoding: one ASCII "r g b"
	// triple per pixel.
	Text Format = iota
	// Binary is the compact P6 encoding: raw RGB bytes after the
	// header.
	Binary
)

// Write serializes buf to w. Both encodings share the same header
// layout: magic, "width height", then the maximum color value, each on
// its own line.
func Write(w io.Writer, buf *engine.ImageBuffer, format Format) error {
	bw := bufio.NewWriter(w)

	magic := "P3"
	if format == Binary {
		magic = "P6"
	}
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, buf.Width(), buf.Height(), buf.MaxColor()); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	pix := buf.Pixels()
	if format == Binary {
		if _, err := bw.Write(pix); err != nil {
			return fmt.Errorf("write ppm pixels: %w", err)
		}
	} else {
		for i := 0; i < len(pix); i += 3 {
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", pix[i], pix[i+1], pix[i+2]); err != nil {
				return fmt.Errorf("write ppm pixels: %w", err)
			}
		}
	}

	return bw.Flush()
}
