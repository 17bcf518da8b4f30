package cmd_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/frickbooks/cmd/frickbooks/cmd"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, k := range []string{"FRICKBOOKS_BACKEND", "OPENAI_API_KEY", "FRICKBOOKS_GCP_PROJECT", "FRICKBOOKS_NO_COLOR"} {
		t.Setenv(k, "")
	}
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestRootPlaysWithMockBackend(t *testing.T) {
	setEnv(t, nil)

	var out bytes.Buffer
	root := cmd.NewRootCmd()
	root.SetIn(strings.NewReader("Acme\nDr. Cash $5\nCr. Equity $5\n\n"))
	root.SetOut(&out)
	root.SetArgs([]string{"--backend", "mock", "--no-color"})

	require.NoError(t, root.Execute())

	text := out.String()
	assert.Contains(t, text, "Welcome to FrickBooks!")
	assert.Contains(t, text, "Dr. Cash.... $5.00")
	assert.Contains(t, text, "Cr. Equity.... $5.00")
	assert.Contains(t, text, "The accountants squint at")
	assert.NotContains(t, text, "\x1b[")
}

func TestRootRequiresCredentials(t *testing.T) {
	setEnv(t, map[string]string{"FRICKBOOKS_BACKEND": "openai"})

	root := cmd.NewRootCmd()
	root.SetIn(strings.NewReader(""))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestRootRejectsUnknownBackend(t *testing.T) {
	setEnv(t, nil)

	root := cmd.NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--backend", "carrier-pigeon"})

	assert.Error(t, root.Execute())
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	root := cmd.NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "frickbooks "+cmd.Version+"\n", out.String())
}
