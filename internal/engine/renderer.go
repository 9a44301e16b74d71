package engine

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/hukka/raytracer/internal/scene"
)

// tMinEpsilon is the lower bound of the valid t range for every cast.
// Keeping it slightly above zero stops scattered rays from immediately
// re-hitting the surface they originate on (shadow acne).
const tMinEpsilon = 0.001

// tileSize is the square tile edge used to partition the pixel grid
// across workers.
const tileSize = 32

// RenderConfig defines the parameters of one render pass.
type RenderConfig struct {
	Width        int
	Height       int
	SamplesPerPx int
	MaxDepth     int

	// Seed makes the render reproducible: the same scene, config and
	// seed produce a bit-identical buffer. Zero picks a clock seed.
	Seed int64

	// Workers caps the goroutines tracing tiles; <= 0 means NumCPU.
	Workers int
}

// Validate rejects configurations the renderer cannot honor. It runs
// before any pixel work so a bad config never yields a partial render.
func (cfg RenderConfig) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("render config: invalid resolution %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPx <= 0 {
		return fmt.Errorf("render config: samples per pixel must be positive, got %d", cfg.SamplesPerPx)
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("render config: max depth must not be negative, got %d", cfg.MaxDepth)
	}
	return nil
}

// ConfigFromSettings derives a RenderConfig from scene settings, filling
// gaps with preview defaults.
func ConfigFromSettings(s scene.RenderSettings) RenderConfig {
	cfg := RenderConfig{
		Width:        s.Width,
		Height:       s.Height,
		SamplesPerPx: s.SamplesPerPx,
		MaxDepth:     s.MaxDepth,
		Seed:         s.Seed,
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 400, 225
	}
	if cfg.SamplesPerPx <= 0 {
		cfg.SamplesPerPx = 50
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 50
	}
	return cfg
}

// Render traces the scene and returns a freshly allocated buffer. The
// scene must not be mutated until Render returns.
func Render(sc *scene.Scene, cfg RenderConfig) (*ImageBuffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	buf := NewImageBuffer(cfg.Width, cfg.Height)
	if err := RenderInto(sc, cfg, buf, nil); err != nil {
		return nil, err
	}
	return buf, nil
}

// RenderInto renders the scene into buf, which must match the config's
// resolution. If progress is non-nil it is called from worker
// goroutines as tiles complete, throttled to roughly 5% increments, so
// an interactive caller can refresh a live preview.
func RenderInto(sc *scene.Scene, cfg RenderConfig, buf *ImageBuffer, progress func()) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if buf.Width() != cfg.Width || buf.Height() != cfg.Height {
		return fmt.Errorf("render: buffer is %dx%d, config wants %dx%d",
			buf.Width(), buf.Height(), cfg.Width, cfg.Height)
	}

	// Everything the workers read is frozen before any of them starts.
	w := sceneToWorld(sc)
	cam := newCamera(sc.Camera, cfg)
	background := backgroundFunc(sc)

	baseSeed := cfg.Seed
	if baseSeed == 0 {
		baseSeed = timeSeed()
	}

	workerCount := cfg.Workers
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	type tile struct {
		index          int
		x0, y0, x1, y1 int
	}
	numTilesX := (cfg.Width + tileSize - 1) / tileSize
	numTilesY := (cfg.Height + tileSize - 1) / tileSize
	totalTiles := numTilesX * numTilesY
	tiles := make(chan tile, totalTiles)
	index := 0
	for ty := 0; ty < cfg.Height; ty += tileSize {
		for tx := 0; tx < cfg.Width; tx += tileSize {
			tiles <- tile{
				index: index,
				x0:    tx,
				y0:    ty,
				x1:    minInt(tx+tileSize, cfg.Width),
				y1:    minInt(ty+tileSize, cfg.Height),
			}
			index++
		}
	}
	close(tiles)

	invWidth := 1.0 / float64(cfg.Width)
	invHeight := 1.0 / float64(cfg.Height)
	invSamples := 1.0 / float64(cfg.SamplesPerPx)
	heightMinus1 := float64(cfg.Height - 1)

	var processedTiles int
	var progressMu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tiles {
				// The RNG belongs to the tile, not the worker, so the
				// image is identical no matter which worker gets here
				// first.
				rng := newRandSource(tileSeed(baseSeed, t.index))

				for y := t.y0; y < t.y1; y++ {
					// Film t runs bottom-up, pixel rows top-down.
					flipY := heightMinus1 - float64(y)
					for x := t.x0; x < t.x1; x++ {
						col := vec3{}
						for s := 0; s < cfg.SamplesPerPx; s++ {
							// Uniform sub-pixel jitter for anti-aliasing.
							u := (float64(x) + rng.Float64()) * invWidth
							vv := (flipY + rng.Float64()) * invHeight
							r := cam.getRay(u, vv, rng)
							col = col.add(rayColor(r, w, background, cfg.MaxDepth, rng))
						}

						// Average, gamma-2 correct, clamp, store.
						col = col.mul(invSamples)
						buf.SetRGB(x, y,
							toChannel(col.x),
							toChannel(col.y),
							toChannel(col.z))
					}
				}

				if progress != nil {
					progressMu.Lock()
					processedTiles++
					threshold := maxInt(1, totalTiles/20)
					notify := processedTiles%threshold == 0 || processedTiles == totalTiles
					progressMu.Unlock()
					if notify {
						progress()
					}
				}
			}
		}()
	}
	wg.Wait()

	return nil
}

// toChannel maps a linear color component to an 8-bit channel value:
// gamma-2 correction (sqrt) then clamp to [0, maxColor].
func toChannel(c float64) uint8 {
	if c < 0 || math.IsNaN(c) {
		return 0
	}
	c = math.Sqrt(c)
	return uint8(clamp(c*255.999, 0, 255.999))
}

// backgroundFunc builds the miss shader for the scene: a vertical
// gradient between horizon and zenith colors, or a solid color.
func backgroundFunc(sc *scene.Scene) func(ray) vec3 {
	if sc.Sky != nil && sc.Sky.Type == "gradient" {
		horizon := v(sc.Sky.Horizon.R, sc.Sky.Horizon.G, sc.Sky.Horizon.B)
		zenith := v(sc.Sky.Zenith.R, sc.Sky.Zenith.G, sc.Sky.Zenith.B)
		return func(r ray) vec3 {
			dir := r.dir.unit()
			if dir.nearZero() {
				return horizon
			}
			t := clamp((dir.y+1.0)*0.5, 0, 1)
			return horizon.mul(1 - t).add(zenith.mul(t))
		}
	}

	var bg vec3
	if sc.Sky != nil && sc.Sky.Type == "solid" {
		bg = v(sc.Sky.Color.R, sc.Sky.Color.G, sc.Sky.Color.B)
	} else {
		bg = v(sc.Background.R, sc.Background.G, sc.Background.B)
	}
	return func(ray) vec3 { return bg }
}

// rayColor is the recursive light transport: emitted light plus the
// scattered ray's color filtered by the surface attenuation. The depth
// counter is the termination guarantee; once it reaches zero the ray
// contributes nothing, which bounds recursion even in a hall of
// mirrors.
func rayColor(r ray, w world, background func(ray) vec3, depth int, rng *randSource) vec3 {
	if depth <= 0 {
		return vec3{}
	}

	var rec hitRecord
	if !w.hit(r, tMinEpsilon, math.MaxFloat64, &rec) {
		return background(r)
	}

	emitted := rec.mat.emitted()
	ok, attenuation, scattered := rec.mat.scatter(rng, r, &rec)
	if !ok {
		return emitted
	}
	return emitted.add(attenuation.mulVec(rayColor(scattered, w, background, depth-1, rng)))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
