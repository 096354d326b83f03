package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/MrSnakeDoc/hfqr/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// String is the one-line version banner used by the server and the CLI.
func String() string {
	return fmt.Sprintf("%s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
