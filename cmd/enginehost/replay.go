package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/philipparndt/cylinderworks/assets"
	"github.com/philipparndt/cylinderworks/internal/app"
	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/internal/script"
	"github.com/philipparndt/cylinderworks/pkg/engine"
	"github.com/spf13/cobra"
)

var replaySettle time.Duration

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Replay a touch script and print the resulting diagnostics",
	Long: `Replay a touch script against a fresh view, then print the channel
snapshot as JSON. The script is a YAML file, or the name of an embedded
script such as "demo".`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().DurationVar(&replaySettle, "settle", 500*time.Millisecond, "time to keep rendering after the script ends")
}

// loadScript reads a script from disk, falling back to the embedded
// scripts/<name>.yaml.
func loadScript(name string) (*script.Script, error) {
	if _, err := os.Stat(name); err == nil {
		return script.Load(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	s, err := script.Load(assets.FS, "scripts/"+name+".yaml")
	if err != nil {
		return nil, fmt.Errorf("script %q not found on disk or embedded: %w", name, err)
	}
	return s, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := loadScript(args[0])
	if err != nil {
		return err
	}

	a, err := app.New(cfg, logging.Logger())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if _, err := a.WaitForScene(ctx); err != nil {
		return err
	}
	a.Hub.Create(engine.NewImageSurface(cfg.Render.Width, cfg.Render.Height, nil))

	if err := s.Play(ctx, a.View); err != nil {
		return fmt.Errorf("replay %s: %w", s.Name, err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(replaySettle):
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(a.Channel.Snapshot())
}
