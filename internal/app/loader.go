package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/philipparndt/cylinderworks/pkg/assembly"
	"github.com/philipparndt/cylinderworks/pkg/watcher"
)

const reloadDebounce = 250 * time.Millisecond

// SceneFiles returns the on-disk paths the configured scene depends on.
// The document path is returned even when it cannot be parsed.
func (a *App) SceneFiles() ([]string, error) {
	key := a.SceneKey()
	keys, err := assembly.Files(a.Assets.FS, key)
	if len(keys) == 0 {
		keys = []string{key}
	}
	paths := make([]string, len(keys))
	for i, k := range keys {
		paths[i] = filepath.Join(a.assetsDir, filepath.FromSlash(k))
	}
	return paths, err
}

// ErrNoAssetsDir is returned by Watch for embedded assets.
var ErrNoAssetsDir = errors.New("scene watching needs an assets directory")

// Watch reloads the scene whenever one of its files changes.
func (a *App) Watch(ctx context.Context) error {
	if a.assetsDir == "" {
		return ErrNoAssetsDir
	}
	w, err := watcher.New(reloadDebounce, a.Log)
	if err != nil {
		return err
	}
	defer w.Close()

	track := func() error {
		files, err := a.SceneFiles()
		if err != nil {
			a.Log.Warn("scene has unreadable dependencies", "err", err)
		}
		if err := w.Track(files); err != nil {
			return fmt.Errorf("watch scene: %w", err)
		}
		return nil
	}
	if err := track(); err != nil {
		return err
	}
	a.Log.Info("watching scene for changes", "files", w.Tracked())

	return w.Run(ctx, func(changed []string) {
		a.Log.Info("scene changed, reloading", "files", changed)
		a.View.ReloadScene()
		// the new document may reference different meshes
		if err := track(); err != nil {
			a.Log.Warn("failed to update watched files", "err", err)
		}
	})
}
