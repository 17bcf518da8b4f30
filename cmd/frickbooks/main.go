// Package main is the entry point for the frickbooks game.
package main

import (
	"os"

	"github.com/PabloGalante/frickbooks/cmd/frickbooks/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
