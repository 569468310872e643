package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"runtime"
	"time"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/cylinderworks/internal/app"
	"github.com/philipparndt/cylinderworks/internal/config"
	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/pkg/engine"
	"github.com/philipparndt/cylinderworks/version"
	"github.com/spf13/pflag"
)

func init() {
	// raylib must stay on the main thread
	runtime.LockOSThread()
}

type window struct {
	host    *app.App
	log     *slog.Logger
	surface *engine.ImageSurface
	frames  frameBox
	seen    uint64
	texture rl.Texture2D
	width   int32
	height  int32

	contacts contactTracker
	rpm      float32
	hud      []string
	hudAt    time.Time
}

func main() {
	flags := config.AddFlags(pflag.CommandLine)
	pflag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags) error {
	cfg, err := flags.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	logging.SetLogger(log)

	host, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer host.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := host.Run(ctx); err != nil {
			log.Error("host stopped", "err", err)
		}
	}()

	rl.SetConfigFlags(rl.FlagWindowResizable) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Render.Width), int32(cfg.Render.Height), "Cylinderworks "+version.GetFullVersion())
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Render.FPS))

	w := &window{host: host, log: log}
	w.surface = engine.NewImageSurface(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()), w.frames.Put)
	w.loadTexture()
	defer func() { rl.UnloadTexture(w.texture) }()

	host.Hub.Create(w.surface)
	defer host.Hub.Destroy()

	for !rl.WindowShouldClose() {
		w.handleResize()
		w.handleInput()
		w.upload()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))
		rl.DrawTexture(w.texture, 0, 0, rl.White)
		w.drawHUD()
		rl.EndDrawing()
	}
	w.dispatch(w.contacts.Cancel())
	return nil
}

func (w *window) loadTexture() {
	width, height := w.surface.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	w.texture = rl.LoadTextureFromImage(&rl.Image{
		Data:    unsafe.Pointer(&img.Pix[0]),
		Width:   int32(width),
		Height:  int32(height),
		Mipmaps: 1,
		Format:  rl.UncompressedR8g8b8a8,
	})
	w.width, w.height = int32(width), int32(height)
}

func (w *window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width, height := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	if width <= 0 || height <= 0 {
		return
	}
	w.surface.SetSize(width, height)
	rl.UnloadTexture(w.texture)
	w.loadTexture()
	w.host.Hub.Change(width, height)
}

// upload copies the newest frame into the texture when its size matches.
func (w *window) upload() {
	w.seen = w.frames.Take(w.seen, func(f *image.RGBA) {
		if int32(f.Rect.Dx()) != w.width || int32(f.Rect.Dy()) != w.height {
			return
		}
		pixels := unsafe.Slice((*color.RGBA)(unsafe.Pointer(&f.Pix[0])), len(f.Pix)/4)
		rl.UpdateTexture(w.texture, pixels)
	})
}
