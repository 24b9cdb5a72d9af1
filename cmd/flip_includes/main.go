// Command flip_includes flips wg_/wg3_ includes and header guards in place.
package main

import (
	"github.com/netdebug/wgflip/internal/cli"
	"github.com/netdebug/wgflip/internal/domain"
)

func main() {
	cli.ExecuteMode("flip_includes", domain.ModeInPlace)
}
