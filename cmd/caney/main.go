// Package main provides the entry point for the caney CLI.
package main

import (
	"os"

	"caney/cmd/caney/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
