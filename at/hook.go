package at

import "bytes"

// Observer is offered every completed non-terminal line. It returns true
// when it claims the line, which stops the line from reaching any observer
// registered before it.
type Observer interface {
	Capture(line []byte) bool
}

// Hook captures the most recent line starting with its prefix. It is used
// both for replies to a command (e.g. "+CSQ:") and for unsolicited
// notifications (e.g. "+CMTI:"). Every match replaces the previous content;
// nothing is cleared until Reset is called.
type Hook struct {
	prefix   []byte
	captured []byte
	ok       bool
}

// NewHook returns a hook matching lines that begin with prefix.
func NewHook(prefix string) *Hook {
	return &Hook{prefix: []byte(prefix)}
}

// Capture implements Observer.
func (h *Hook) Capture(line []byte) bool {
	if !bytes.HasPrefix(line, h.prefix) {
		return false
	}
	h.captured = append(h.captured[:0], line...)
	h.ok = true
	return true
}

// Prefix returns the prefix the hook matches.
func (h *Hook) Prefix() string { return string(h.prefix) }

// Captured reports whether a line has been captured since the last Reset.
func (h *Hook) Captured() bool { return h.ok }

// Len returns the length of the captured line.
func (h *Hook) Len() int { return len(h.captured) }

// Bytes returns the captured line. The slice is reused by later captures.
func (h *Hook) Bytes() []byte { return h.captured }

func (h *Hook) String() string { return string(h.captured) }

// Reset clears the captured line.
func (h *Hook) Reset() {
	h.captured = h.captured[:0]
	h.ok = false
}

// HookRegistry is an ordered set of observers, newest first. It references
// the observers it is given; callers keep ownership and must keep them alive
// for as long as they are registered.
type HookRegistry struct {
	observers []Observer
}

// Register puts o in front of every observer registered so far.
func (r *HookRegistry) Register(o Observer) {
	r.observers = append([]Observer{o}, r.observers...)
}

// Dispatch offers line to the observers, newest first, and stops at the
// first one that claims it. It reports whether any observer did.
func (r *HookRegistry) Dispatch(line []byte) bool {
	for _, o := range r.observers {
		if o.Capture(line) {
			return true
		}
	}
	return false
}

// Len returns the number of registered observers.
func (r *HookRegistry) Len() int { return len(r.observers) }
