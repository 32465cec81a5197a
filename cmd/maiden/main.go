// Command maiden is the CLI entry point for running Rockstar programs.
package main

import (
	"os"

	"maiden/cmd/maiden/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
