package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/philipparndt/cylinderworks/internal/app"
	"github.com/philipparndt/cylinderworks/internal/gesture"
	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/internal/script"
	"github.com/philipparndt/cylinderworks/pkg/engine"
	"github.com/spf13/cobra"
)

var (
	renderOut     string
	renderRPM     float32
	renderDrag    float32
	renderFrames  int
	renderTimeout time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the scene to a PNG file",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "frame.png", "output PNG file")
	renderCmd.Flags().Float32Var(&renderRPM, "rpm", 0, "test rpm to apply before rendering")
	renderCmd.Flags().Float32Var(&renderDrag, "drag", 0, "horizontal one-finger drag in pixels before rendering")
	renderCmd.Flags().IntVar(&renderFrames, "frames", 10, "frames to render before capturing")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 10*time.Second, "give up after this long")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), renderTimeout)
	defer cancel()

	a, err := app.New(cfg, logging.Logger())
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.WaitForScene(ctx); err != nil {
		return err
	}
	if renderRPM > 0 {
		a.View.SetTestRPM(renderRPM)
	}
	if renderDrag != 0 {
		cx, cy := float32(cfg.Render.Width)/2, float32(cfg.Render.Height)/2
		drag := &script.Script{Steps: script.Drag(gesture.Point{X: cx, Y: cy}, gesture.Point{X: cx + renderDrag, Y: cy}, 8)}
		if err := drag.Play(ctx, a.View); err != nil {
			return err
		}
	}

	frames := make(chan *image.RGBA, 1)
	seen := 0
	a.Hub.Create(engine.NewImageSurface(cfg.Render.Width, cfg.Render.Height, func(f *image.RGBA) {
		seen++
		if seen < renderFrames {
			return
		}
		select {
		case frames <- cloneFrame(f):
		default:
		}
	}))

	var frame *image.RGBA
	select {
	case frame = <-frames:
	case <-ctx.Done():
		return fmt.Errorf("no frame rendered: %w", ctx.Err())
	}

	f, err := os.Create(renderOut)
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", renderOut, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", renderOut, frame.Rect.Dx(), frame.Rect.Dy())
	return nil
}

func cloneFrame(f *image.RGBA) *image.RGBA {
	out := image.NewRGBA(f.Rect)
	copy(out.Pix, f.Pix)
	return out
}
