// Command flip_files flips wg_/wg3_ includes and header guards and renames
// each file to the other convention.
package main

import (
	"github.com/netdebug/wgflip/internal/cli"
	"github.com/netdebug/wgflip/internal/domain"
)

func main() {
	cli.ExecuteMode("flip_files", domain.ModeRename)
}
