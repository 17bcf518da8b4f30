package conversation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/frickbooks/internal/app/conversation"
	"github.com/PabloGalante/frickbooks/internal/domain"
)

func TestRenderSystemPromptReplacesEveryPlaceholder(t *testing.T) {
	got := conversation.RenderSystemPrompt("You are the CFO of {NAME}. {NAME} is broke.", "Frick Inc")
	assert.Equal(t, "You are the CFO of Frick Inc. Frick Inc is broke.", got)
}

func TestBuildRequestOrder(t *testing.T) {
	history := []domain.Message{
		{Role: domain.RoleUser, Content: "Dr. Cash.... $1.00\nCr. Equity.... $1.00"},
		{Role: domain.RoleAssistant, Content: "A humble start."},
	}
	batch := domain.Batch{{Payee: "Rent", Amount: 250000, IsDebit: true}, {Payee: "Cash", Amount: 250000}}

	req := conversation.BuildRequest("gpt-4o-mini", "system text", history, batch)

	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, []domain.Message{
		{Role: domain.RoleSystem, Content: "system text"},
		history[0],
		history[1],
		{Role: domain.RoleUser, Content: "Dr. Rent.... $2500.00\nCr. Cash.... $2500.00"},
	}, req.Messages)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_backend", conversation.StateAwaitingBackend.String())
	assert.Equal(t, "unknown", conversation.State(42).String())
}
