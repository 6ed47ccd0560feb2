// Package main is the entry point for the occfg CLI tool.
package main

import (
	"os"

	"github.com/namanrajpal/openchamber/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
