package main

import "github.com/netdebug/wgflip/internal/cli"

func main() {
	cli.Execute()
}
