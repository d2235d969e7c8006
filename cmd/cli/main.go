// Package main is the entry point for the rating-engine CLI.
package main

import (
	"os"

	"rating-engine/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
