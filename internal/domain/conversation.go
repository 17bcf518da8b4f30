package domain

// Message is one role-tagged turn exchanged with the narrative backend.
type Message struct {
	Role    Role
	Content string
}

// Session holds the state of one game: the startup being narrated and
// whether the story has ended.
type Session struct {
	ID        SessionID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	// StartupName is chosen once on the welcome screen and never changes.
	StartupName string

	// Terminated is set when a backend reply carries the end marker.
	Terminated bool

	// Turns counts completed exchanges with the backend.
	Turns int
}

// CompletionRequest is what gets sent to the narrative backend.
type CompletionRequest struct {
	Model    string
	Messages []Message
}
