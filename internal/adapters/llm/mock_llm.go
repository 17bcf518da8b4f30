package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PabloGalante/frickbooks/internal/domain"
)

// MockLLM narrates without a network call. Scripted replies are returned in
// order; once they run out it falls back to a canned reaction to the entry.
type MockLLM struct {
	mu       sync.Mutex
	script   []string
	requests []domain.CompletionRequest
}

func NewMockLLM(script ...string) *MockLLM {
	return &MockLLM{script: script}
}

func (m *MockLLM) Complete(ctx context.Context, req domain.CompletionRequest) (domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return domain.Message{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	var text string
	if len(m.script) > 0 {
		text, m.script = m.script[0], m.script[1:]
	} else {
		first, _, _ := strings.Cut(lastUserContent(req.Messages), "\n")
		text = fmt.Sprintf("The accountants squint at %q and shrug. Business goes on.", first)
	}

	return domain.Message{Role: domain.RoleAssistant, Content: text}, nil
}

// Requests returns what the mock has been asked so far.
func (m *MockLLM) Requests() []domain.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
