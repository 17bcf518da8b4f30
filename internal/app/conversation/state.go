package conversation

// State is where the controller sits in a turn.
type State int

const (
	StateIdle State = iota
	StateParsing
	StateValidating
	StateAwaitingBackend
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateParsing:
		return "parsing"
	case StateValidating:
		return "validating"
	case StateAwaitingBackend:
		return "awaiting_backend"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
