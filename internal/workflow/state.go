package workflow

// State is the Manager lifecycle.
type State int

const (
	// StateIdle means nothing is being processed; tasks may be pending.
	StateIdle State = iota
	// StateProcessing means ProcessAll is draining the pending list.
	StateProcessing
	// StateDrained means the last ProcessAll emptied the pending list.
	StateDrained
)

func (s State) String() string {
	switch s {
	case StateProcessing:
		return "processing"
	case StateDrained:
		return "drained"
	default:
		return "idle"
	}
}
