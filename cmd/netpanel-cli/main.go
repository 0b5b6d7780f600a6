// Package main provides the entry point for netpanel-cli.
//
// netpanel-cli is the command-line management tool for the NetPanel
// console, covering session handling and resource administration.
package main

import (
	"fmt"
	"os"

	"github.com/netpanel/netpanel-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
