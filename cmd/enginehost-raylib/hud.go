package main

import (
	"fmt"
	"maps"
	"slices"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/cylinderworks/internal/channel"
	"github.com/philipparndt/cylinderworks/pkg/engine"
)

const hudInterval = 250 * time.Millisecond

var hudKeys = []string{
	"sceneName",
	engine.KeyFPS,
	engine.KeyFrameTimeMs,
	"rpm",
	"sceneTriangles",
	"cameraDistance",
	channel.KeyDeviceModel,
}

// hudLines formats the snapshot keys worth showing, in a fixed order
// followed by anything unknown when verbose.
func hudLines(snap map[string]any, verbose bool) []string {
	var out []string
	for _, k := range hudKeys {
		if v, ok := snap[k]; ok {
			out = append(out, formatEntry(k, v))
		}
	}
	if !verbose {
		return out
	}
	for _, k := range slices.Sorted(maps.Keys(snap)) {
		if !slices.Contains(hudKeys, k) {
			out = append(out, formatEntry(k, snap[k]))
		}
	}
	return out
}

func formatEntry(k string, v any) string {
	switch v := v.(type) {
	case float64:
		return fmt.Sprintf("%s: %.1f", k, v)
	case float32:
		return fmt.Sprintf("%s: %.1f", k, v)
	}
	return fmt.Sprintf("%s: %v", k, v)
}

func (w *window) drawHUD() {
	if time.Since(w.hudAt) >= hudInterval {
		w.hud = hudLines(w.host.Channel.Snapshot(), rl.IsKeyDown(rl.KeyTab))
		w.hudAt = time.Now()
	}

	lines := slices.Concat(w.hud, []string{"", "drag: orbit  right drag: pan  wheel: zoom", fmt.Sprintf("up/down: test rpm (%.0f)  0: off  r: reload", w.rpm)})
	x, y := int32(12), int32(12)
	rl.DrawRectangle(x-6, y-6, 420, int32(len(lines))*18+12, rl.NewColor(0, 0, 0, 140))
	for _, line := range lines {
		rl.DrawText(line, x, y, 14, rl.RayWhite)
		y += 18
	}
}
