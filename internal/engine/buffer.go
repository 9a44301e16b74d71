package engine

import "image"

// maxColor is the largest channel value the buffer can hold; it is also
// the max-color field of the pixel-map encodings downstream writers
// emit.
const maxColor = 255

// ImageBuffer is a fixed-size grid of 8-bit RGB pixels, row-major with
// row 0 at the top. It is the only artifact the engine hands to the
// outside world; file writers and the display read it, the engine only
// writes it, and during a render every worker writes a disjoint region
// so no locking is needed.
type ImageBuffer struct {
	width, height int
	pix           []uint8 // RGB triples, len = width*height*3
}

// NewImageBuffer allocates a black buffer of the given dimensions.
// Dimensions must be positive; Render validates them before calling.
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

func (b *ImageBuffer) Width() int  { return b.width }
func (b *ImageBuffer) Height() int { return b.height }

// MaxColor returns the maximum value a single channel can take.
func (b *ImageBuffer) MaxColor() int { return maxColor }

// Pixels exposes the raw row-major RGB triples. The slice aliases the
// buffer's storage; callers must not write to it.
func (b *ImageBuffer) Pixels() []uint8 { return b.pix }

// SetRGB writes one pixel. (0,0) is the top-left corner.
func (b *ImageBuffer) SetRGB(x, y int, r, g, bl uint8) {
	i := (y*b.width + x) * 3
	b.pix[i] = r
	b.pix[i+1] = g
	b.pix[i+2] = bl
}

// At returns the channels of one pixel.
func (b *ImageBuffer) At(x, y int) (r, g, bl uint8) {
	i := (y*b.width + x) * 3
	return b.pix[i], b.pix[i+1], b.pix[i+2]
}

// Image copies the buffer into an opaque RGBA image for PNG encoding or
// on-screen display.
func (b *ImageBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		src := y * b.width * 3
		dst := y * img.Stride
		for x := 0; x < b.width; x++ {
			img.Pix[dst] = b.pix[src]
			img.Pix[dst+1] = b.pix[src+1]
			img.Pix[dst+2] = b.pix[src+2]
			img.Pix[dst+3] = 0xff
			src += 3
			dst += 4
		}
	}
	return img
}
