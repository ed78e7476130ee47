package executor

// State is the lifecycle position of the executor's running slot.
type State int

const (
	Idle State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether s ends an invocation.
func (s State) Terminal() bool {
	return s == Completed || s == Failed
}
