package assets_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/frickbooks/internal/assets"
)

func TestDefault(t *testing.T) {
	a := assets.Default()

	assert.Contains(t, a.SystemPrompt, "{NAME}")
	assert.Contains(t, a.SystemPrompt, "The End.")
	assert.Equal(t, strings.TrimSpace(a.SystemPrompt), a.SystemPrompt)
	assert.Contains(t, a.Instructions, "Dr. Cash $10000")
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	prompt := filepath.Join(dir, "prompt.txt")
	instructions := filepath.Join(dir, "instructions.txt")
	require.NoError(t, os.WriteFile(prompt, []byte("\n  Narrate {NAME}.  \n"), 0o600))
	require.NoError(t, os.WriteFile(instructions, []byte("Type entries.\n"), 0o600))

	a, err := assets.Load(prompt, instructions)
	require.NoError(t, err)

	assert.Equal(t, "Narrate {NAME}.", a.SystemPrompt)
	assert.Equal(t, "Type entries.\n", a.Instructions)
}

func TestLoadKeepsDefaultsWithoutFiles(t *testing.T) {
	a, err := assets.Load("", "")
	require.NoError(t, err)
	assert.Equal(t, assets.Default(), a)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := assets.Load(filepath.Join(t.TempDir(), "nope.txt"), "")
	assert.Error(t, err)
}
