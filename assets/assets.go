// Package assets embeds the default scene and demo touch scripts.
package assets

import "embed"

// FS holds engine/ (the scene) and scripts/.
//
//go:embed engine scripts
var FS embed.FS
