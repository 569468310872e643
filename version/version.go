package version

import "fmt"

// Set via -ldflags "-X github.com/philipparndt/cylinderworks/version.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with commit and build date when they
// are known.
func GetFullVersion() string {
	switch {
	case GitCommit == "unknown":
		return Version
	case BuildDate == "unknown":
		return fmt.Sprintf("%s (%s)", Version, shortCommit())
	}
	return fmt.Sprintf("%s (%s, %s)", Version, shortCommit(), BuildDate)
}

func shortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}
