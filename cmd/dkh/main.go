// Package main is the entry point for the dkh CLI tool.
package main

import (
	"os"

	"github.com/deckhand-cli/deckhand/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
