package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/cylinderworks/internal/app"
	"github.com/philipparndt/cylinderworks/internal/config"
	"github.com/philipparndt/cylinderworks/internal/logging"
	"github.com/philipparndt/cylinderworks/pkg/engine"
	"github.com/philipparndt/cylinderworks/pkg/viewer"
	"github.com/philipparndt/cylinderworks/version"
	"github.com/spf13/pflag"
)

const refreshInterval = 250 * time.Millisecond

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

	a := fyneapp.NewWithID("io.github.philipparndt.cylinderworks")
	w := a.NewWindow("Cylinderworks " + version.GetFullVersion())

	view := viewer.NewEngineView(host.Hub, host.View)
	diag := widget.NewLabel("")
	diag.TextStyle = fyne.TextStyle{Monospace: true}

	rpmLabel := widget.NewLabel("Test RPM: off")
	rpm := widget.NewSlider(0, engine.MaxRPM)
	rpm.Step = 100
	rpm.OnChanged = func(v float64) {
		host.View.SetTestRPM(float32(v))
		rpmLabel.SetText(fmt.Sprintf("Test RPM: %.0f", v))
	}
	reload := widget.NewButton("Reload scene", func() {
		host.View.ReloadScene()
	})

	side := container.NewVBox(
		widget.NewLabelWithStyle("Diagnostics", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		diag,
		widget.NewSeparator(),
		rpmLabel,
		rpm,
		reload,
	)
	w.SetContent(container.NewBorder(nil, nil, nil, container.NewVScroll(side), view))
	w.Resize(fyne.NewSize(float32(cfg.Render.Width), float32(cfg.Render.Height)))
	w.SetOnClosed(func() {
		view.Close()
		cancel()
	})

	go func() {
		t := time.NewTicker(refreshInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				text := formatSnapshot(host.Channel.Snapshot())
				fyne.Do(func() { diag.SetText(text) })
			}
		}
	}()

	w.ShowAndRun()
	return nil
}

func formatSnapshot(snap map[string]any) string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(snap)) {
		switch v := snap[k].(type) {
		case float64, float32:
			fmt.Fprintf(&b, "%-18s %.2f\n", k, v)
		default:
			fmt.Fprintf(&b, "%-18s %v\n", k, v)
		}
	}
	return b.String()
}
