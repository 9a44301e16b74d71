// Package ui is the interactive front end: a fyne window that shows
// frames as the engine produces them and re-renders when the camera
// moves. The engine itself knows nothing about the window; it only ever
// fills image buffers that are handed over here.
package ui

import (
	"fmt"
	"image"
	"log"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/hukka/raytracer/internal/engine"
	"github.com/hukka/raytracer/internal/scene"
)

const (
	moveStep = 0.5
	rotStep  = 0.05 // radians
)

// Run opens the interactive window for the given scene and blocks until
// it is closed.
func Run(sc *scene.Scene, baseCfg engine.RenderConfig) error {
	a := app.New()
	w := a.NewWindow("Raytracer")

	previewCfg := engine.PreviewConfig(baseCfg)
	finalCfg := baseCfg

	imgCanvas := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, previewCfg.Width, previewCfg.Height)))
	imgCanvas.FillMode = canvas.ImageFillContain
	imgCanvas.SetMinSize(fyne.NewSize(800, 450))

	status := widget.NewLabel("Idle")
	liveUpdate := widget.NewCheck("Live update while rendering", func(bool) {})
	liveUpdate.SetChecked(true)

	// generation identifies the frame currently allowed to publish into
	// the canvas. Starting a new frame bumps it, so a superseded render
	// finishes its tiles but its buffer is simply discarded: frames are
	// abandoned whole, never displayed half-written.
	var mu sync.Mutex
	var generation int

	startRender := func(final bool) {
		mu.Lock()
		generation++
		gen := generation
		mu.Unlock()

		cfg := previewCfg
		if final {
			cfg = finalCfg
		}

		go func() {
			status.SetText("Rendering...")
			start := time.Now()

			buf := engine.NewImageBuffer(cfg.Width, cfg.Height)
			current := func() bool {
				mu.Lock()
				defer mu.Unlock()
				return gen == generation
			}

			var progress func()
			if liveUpdate.Checked {
				progress = func() {
					if !current() {
						return
					}
					imgCanvas.Image = buf.Image()
					imgCanvas.Refresh()
				}
			}

			if err := engine.RenderInto(sc, cfg, buf, progress); err != nil {
				status.SetText("Render failed: " + err.Error())
				return
			}
			if !current() {
				return // a newer frame owns the canvas now
			}

			imgCanvas.Image = buf.Image()
			imgCanvas.Refresh()
			status.SetText(fmt.Sprintf("Done in %.2fs (%dx%d, %d spp)",
				time.Since(start).Seconds(), cfg.Width, cfg.Height, cfg.SamplesPerPx))
		}()
	}

	previewBtn := widget.NewButton("Preview", func() { startRender(false) })
	finalBtn := widget.NewButton("Final render", func() { startRender(true) })

	outputPath := widget.NewEntry()
	outputPath.SetText("render.png")
	saveBtn := widget.NewButton("Save PNG", func() {
		path := outputPath.Text
		go func() {
			buf, err := engine.Render(sc, finalCfg)
			if err != nil {
				status.SetText("Render failed: " + err.Error())
				return
			}
			if err := engine.SavePNG(path, buf); err != nil {
				log.Println("save png:", err)
				status.SetText("Save failed: " + err.Error())
				return
			}
			status.SetText("Saved " + path)
		}()
	})

	controls := container.NewVBox(
		widget.NewLabel("Controls"),
		liveUpdate,
		container.NewHBox(previewBtn, finalBtn),
		widget.NewLabel("Output path"),
		outputPath,
		saveBtn,
		status,
		widget.NewLabel("WASDQE moves the camera, arrows turn it."),
	)

	content := container.NewBorder(nil, nil, nil, controls, imgCanvas)
	w.SetContent(content)
	w.Resize(fyne.NewSize(1200, 700))

	// Camera movement operates on the scene's camera between frames;
	// each keypress edits it and kicks off a fresh preview, so no frame
	// ever observes a half-updated viewpoint.
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		cam := &sc.Camera
		changed := true
		switch ev.Name {
		case fyne.KeyW:
			translate(cam, 0, 0, -moveStep)
		case fyne.KeyS:
			translate(cam, 0, 0, moveStep)
		case fyne.KeyA:
			translate(cam, -moveStep, 0, 0)
		case fyne.KeyD:
			translate(cam, moveStep, 0, 0)
		case fyne.KeyQ:
			translate(cam, 0, -moveStep, 0)
		case fyne.KeyE:
			translate(cam, 0, moveStep, 0)
		case fyne.KeyLeft:
			rotate(cam, -rotStep, 0)
		case fyne.KeyRight:
			rotate(cam, rotStep, 0)
		case fyne.KeyUp:
			rotate(cam, 0, rotStep)
		case fyne.KeyDown:
			rotate(cam, 0, -rotStep)
		default:
			changed = false
		}
		if changed {
			startRender(false)
		}
	})

	go startRender(false)

	w.ShowAndRun()
	return nil
}

// translate shifts the camera and its target together, keeping the view
// direction.
func translate(cam *scene.Camera, dx, dy, dz float64) {
	cam.Position.X += dx
	cam.Position.Y += dy
	cam.Position.Z += dz
	cam.Target.X += dx
	cam.Target.Y += dy
	cam.Target.Z += dz
}

// rotate turns the view direction by the given yaw and pitch deltas,
// clamping pitch short of straight up/down so the camera basis stays
// well defined.
func rotate(cam *scene.Camera, dYaw, dPitch float64) {
	dirX := cam.Target.X - cam.Position.X
	dirY := cam.Target.Y - cam.Position.Y
	dirZ := cam.Target.Z - cam.Position.Z

	r := math.Sqrt(dirX*dirX + dirY*dirY + dirZ*dirZ)
	if r == 0 {
		return
	}
	yaw := math.Atan2(dirZ, dirX) + dYaw
	pitch := math.Atan2(dirY, math.Hypot(dirX, dirZ)) + dPitch

	const limit = math.Pi/2 - 0.1
	if pitch > limit {
		pitch = limit
	}
	if pitch < -limit {
		pitch = -limit
	}

	cam.Target.X = cam.Position.X + r*math.Cos(pitch)*math.Cos(yaw)
	cam.Target.Y = cam.Position.Y + r*math.Sin(pitch)
	cam.Target.Z = cam.Position.Z + r*math.Cos(pitch)*math.Sin(yaw)
}
