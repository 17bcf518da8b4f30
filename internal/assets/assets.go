// Package assets holds the narrator prompt and the player instructions.
// Defaults are compiled in; files named in the config replace them.
package assets

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed prompt.txt
var defaultPrompt string

//go:embed instructions.txt
var defaultInstructions string

type Assets struct {
	// SystemPrompt is a template; see conversation.NamePlaceholder.
	SystemPrompt string
	Instructions string
}

// Default returns the compiled-in assets.
func Default() *Assets {
	return &Assets{
		SystemPrompt: strings.TrimSpace(defaultPrompt),
		Instructions: defaultInstructions,
	}
}

// Load returns the defaults with any non-empty file path read in their place.
func Load(promptFile, instructionsFile string) (*Assets, error) {
	a := Default()

	if promptFile != "" {
		b, err := os.ReadFile(promptFile)
		if err != nil {
			return nil, fmt.Errorf("reading prompt file: %w", err)
		}
		a.SystemPrompt = strings.TrimSpace(string(b))
	}

	if instructionsFile != "" {
		b, err := os.ReadFile(instructionsFile)
		if err != nil {
			return nil, fmt.Errorf("reading instructions file: %w", err)
		}
		a.Instructions = string(b)
	}

	return a, nil
}
