package main

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/philipparndt/cylinderworks/internal/channel"
	"github.com/spf13/cobra"
)

var (
	clientTimeout time.Duration
	snapshotJSON  bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch a diagnostics snapshot from a running host",
	Args:  cobra.NoArgs,
	RunE:  runSnapshot,
}

var rpmCmd = &cobra.Command{
	Use:   "rpm [value]",
	Short: "Drive the engine of a running host at a test rpm",
	Args:  cobra.ExactArgs(1),
	RunE:  runRPM,
}

func init() {
	rootCmd.AddCommand(snapshotCmd, rpmCmd)
	for _, c := range []*cobra.Command{snapshotCmd, rpmCmd} {
		c.Flags().DurationVar(&clientTimeout, "timeout", 5*time.Second, "request timeout")
	}
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "print the snapshot as JSON")
}

func dial(cmd *cobra.Command) (*channel.Client, context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), clientTimeout)
	c, err := channel.Dial(ctx, "ws://"+cfg.Channel.Listen+channel.Path)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return c, ctx, cancel, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	c, ctx, cancel, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cancel()
	defer c.Close()

	snap, err := c.Snapshot(ctx)
	if err != nil {
		return err
	}
	if snapshotJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, k := range slices.Sorted(maps.Keys(snap)) {
		fmt.Fprintf(w, "%s\t%v\n", k, snap[k])
	}
	return w.Flush()
}

func runRPM(cmd *cobra.Command, args []string) error {
	rpm, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Errorf("invalid rpm %q: %w", args[0], err)
	}
	c, ctx, cancel, err := dial(cmd)
	if err != nil {
		return err
	}
	defer cancel()
	defer c.Close()
	return c.SetTestRPM(ctx, float32(rpm))
}
