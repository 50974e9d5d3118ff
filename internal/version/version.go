package version

import "fmt"

// Version is the release of the tarotbuild binary, set at link time:
// go build -ldflags "-X git.home.luguber.info/inful/tarotbuild/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, set at link time like Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("tarotbuild %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
