package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/frickbooks/internal/adapters/llm"
	"github.com/PabloGalante/frickbooks/internal/domain"
)

func TestMockLLMScriptThenFallback(t *testing.T) {
	m := llm.NewMockLLM("first", "second")
	req := domain.CompletionRequest{Messages: []domain.Message{
		{Role: domain.RoleSystem, Content: "narrate"},
		{Role: domain.RoleUser, Content: "Dr. Cash.... $5.00\nCr. Equity.... $5.00"},
	}}

	for _, want := range []string{"first", "second"} {
		msg, err := m.Complete(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.Message{Role: domain.RoleAssistant, Content: want}, msg)
	}

	msg, err := m.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, msg.Content, `"Dr. Cash.... $5.00"`)
	assert.Len(t, m.Requests(), 3)
}

func TestMockLLMHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := llm.NewMockLLM("never").Complete(ctx, domain.CompletionRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}
