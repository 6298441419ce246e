package at

import "bytes"

// EventKind tells what, if anything, a fed byte completed.
type EventKind int

const (
	EventNone     EventKind = iota // byte extended the open line
	EventTerminal                  // OK or ERROR line, see Event.Result
	EventLine                      // any other completed line
)

// Event is returned by Accumulator.Feed.
//
// Line aliases the accumulator's internal buffer and is only valid until
// the next call to Feed or Reset. Callers that keep it must copy it.
type Event struct {
	Kind      EventKind
	Result    Result
	Line      []byte
	Truncated bool
}

// Accumulator turns a byte stream into CRLF terminated lines.
//
// A line is closed by LF only when the byte before it was CR. At most
// LineCapacity bytes of a line are kept; the rest are dropped and the
// resulting Line event is flagged Truncated. The zero value is ready to use.
type Accumulator struct {
	buf       [LineCapacity]byte
	n         int
	last      byte
	truncated bool
}

// Feed consumes one byte and reports the line it completed, if any.
func (a *Accumulator) Feed(c byte) Event {
	if c == LF && a.last == CR {
		return a.close()
	}
	a.last = c
	if a.n < len(a.buf) {
		a.buf[a.n] = c
		a.n++
	} else {
		a.truncated = true
	}
	return Event{Kind: EventNone}
}

func (a *Accumulator) close() Event {
	line := a.buf[:a.n]
	truncated := a.truncated
	// A CR that arrived after the buffer filled up was dropped with the rest.
	if !truncated {
		line = line[:len(line)-1]
	}
	a.Reset()

	switch {
	case !truncated && string(line) == OK:
		return Event{Kind: EventTerminal, Result: Success}
	case !truncated && string(line) == ERROR:
		return Event{Kind: EventTerminal, Result: Failure}
	}
	return Event{Kind: EventLine, Line: line, Truncated: truncated}
}

// Pending returns the bytes of the line still being accumulated.
func (a *Accumulator) Pending() []byte {
	return a.buf[:a.n]
}

// IsPrompt reports whether the open line is exactly the prompt marker.
func (a *Accumulator) IsPrompt() bool {
	return !a.truncated && bytes.Equal(a.buf[:a.n], []byte(PromptMarker))
}

// Reset discards the open line.
func (a *Accumulator) Reset() {
	a.n = 0
	a.last = 0
	a.truncated = false
}
