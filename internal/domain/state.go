package domain

// State is a step of one report generation. Skipped, Written and WriteFailed
// are terminal.
type State int

// Generation states.
const (
	StateNotStarted State = iota
	StateDiscovering
	StateSkipped
	StateBuilt
	StateWriting
	StateWritten
	StateWriteFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateDiscovering:
		return "discovering"
	case StateSkipped:
		return "skipped"
	case StateBuilt:
		return "built"
	case StateWriting:
		return "writing"
	case StateWritten:
		return "written"
	case StateWriteFailed:
		return "write-failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateSkipped || s == StateWritten || s == StateWriteFailed
}
