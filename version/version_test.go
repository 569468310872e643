package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	v, c, d := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = v, c, d })

	Version, GitCommit, BuildDate = "dev", "unknown", "unknown"
	assert.Equal(t, "dev", GetFullVersion())

	Version, GitCommit = "1.2.0", "0123456789abcdef"
	assert.Equal(t, "1.2.0 (0123456)", GetFullVersion())

	BuildDate = "2026-10-01"
	assert.Equal(t, "1.2.0 (0123456, 2026-10-01)", GetFullVersion())
	assert.Equal(t, "1.2.0", GetVersion())
}
