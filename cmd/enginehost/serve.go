package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/cylinderworks/internal/app"
	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/pkg/engine"
	"github.com/spf13/cobra"
)

var serveScript string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Render offscreen and expose the diagnostics channel",
	Long: `Start one renderer view on an offscreen surface and serve the
engine/diagnostics channel until interrupted. With --script a touch script
is replayed once the view is rendering.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveScript, "script", "", "touch script to replay (file or embedded name)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, logging.Logger())
	if err != nil {
		return err
	}
	defer a.Close()

	a.Hub.Create(engine.NewImageSurface(cfg.Render.Width, cfg.Render.Height, nil))

	if serveScript != "" {
		s, err := loadScript(serveScript)
		if err != nil {
			return err
		}
		go func() {
			if err := s.Play(ctx, a.View); err != nil && !errors.Is(err, ctx.Err()) {
				a.Log.Warn("script stopped", "script", s.Name, "err", err)
				return
			}
			a.Log.Info("script finished", "script", s.Name)
		}()
	}
	return a.Run(ctx)
}
