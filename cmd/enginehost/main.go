package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/cylinderworks/internal/config"
	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/version"
	"github.com/spf13/cobra"
)

var (
	flags *config.Flags
	cfg   config.Config
)

var rootCmd = &cobra.Command{
	Use:   "enginehost",
	Short: "Headless host for the cylinderworks renderer",
	Long: `enginehost runs the cylinderworks renderer behind the same view and
registry layer a mobile shell uses. It can serve live diagnostics over a
websocket channel, replay touch scripts, render frames to PNG, and talk to
a running host as a client.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = flags.Load(); err != nil {
			return err
		}
		log, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		logging.SetLogger(log)
		return nil
	},
}

func init() {
	flags = config.AddFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
