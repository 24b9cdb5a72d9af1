package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/netdebug/wgflip/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("wgflip %s (commit=%s, date=%s)", Version, Commit, Date)
}
