package at

// Result is the outcome of waiting for a device response.
type Result int

const (
	Success Result = iota // OK
	Failure               // ERROR
	Prompt                // "> " left open at deadline
	Timeout               // no terminal condition within the budget
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Prompt:
		return "prompt"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}
