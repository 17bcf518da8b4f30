package domain

import "context"

// LLMClient defines how the core application talks to the narrative backend.
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) (Message, error)
}

// SessionStore defines session's persistence
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
}

// HistoryStore keeps the completed exchanges replayed to the backend on every turn.
type HistoryStore interface {
	Append(msgs ...Message)
	Snapshot() []Message
	Len() int
}

// Display is the surface the turn loop writes to. Implementations must be
// safe to call from the goroutine running a backend exchange.
type Display interface {
	Write(text string, color Color)
	UpdateStatus(text string, color Color)
	ClearInput()
	SetInput(text string)
	SetInputDisabled(disabled bool)
}
