package conversation

import (
	"strings"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

// NamePlaceholder is replaced with the startup name in the system prompt.
const NamePlaceholder = "{NAME}"

// RenderSystemPrompt fills the template with the startup name.
func RenderSystemPrompt(template, startupName string) string {
	return strings.ReplaceAll(template, NamePlaceholder, startupName)
}

// BuildRequest lays out a backend request: system instruction, prior
// exchanges, then the current batch as the user message.
func BuildRequest(model, system string, history []domain.Message, batch domain.Batch) domain.CompletionRequest {
	msgs := make([]domain.Message, 0, len(history)+2)
	msgs = append(msgs, domain.Message{Role: domain.RoleSystem, Content: system})
	msgs = append(msgs, history...)
	msgs = append(msgs, domain.Message{Role: domain.RoleUser, Content: batch.Render()})

	return domain.CompletionRequest{
		Model:    model,
		Messages: msgs,
	}
}
