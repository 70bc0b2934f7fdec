// Package version allows linker flags to be set at build time.
package version

import "fmt"

// Build information, set with -ldflags "-X ..." for release builds and
// logged when the shop opens.
var (
	Version = "?"
	Commit  = "?"
	Built   = "?"
)

// String is used by the CLI's --version flag.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Built)
}
