// Package main provides the entry point for the leafdex CLI.
package main

import (
	"os"

	"github.com/leafdex/leafdex-server/cmd/leafdex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
