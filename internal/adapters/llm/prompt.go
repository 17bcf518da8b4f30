package llm

import (
	"strings"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

// splitSystem pulls system messages out of the conversation. Backends that
// take the instruction separately (Gemini) get it joined; the rest keeps its order.
func splitSystem(msgs []domain.Message) (string, []domain.Message) {
	var (
		system []string
		rest   = make([]domain.Message, 0, len(msgs))
	)
	for _, m := range msgs {
		if m.Role == domain.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}

// lastUserContent returns the most recent user message, used by the mock narrator.
func lastUserContent(msgs []domain.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == domain.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}
