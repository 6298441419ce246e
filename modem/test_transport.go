package modem

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// TestTransport is a test helper that simulates a serial port opened with a
// read timeout: Read returns (0, nil) when nothing is pending. Replies
// queued with Reply are released one per Write, so a response is never
// readable before the command that triggers it has been written.
type TestTransport struct {
	mu      sync.Mutex
	rx      bytes.Buffer
	written bytes.Buffer
	replies []string
	closed  bool
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{}
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	t.written.Write(p)
	if len(t.replies) > 0 {
		t.rx.WriteString(t.replies[0])
		t.replies = t.replies[1:]
	}
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.EOF
	}
	if t.rx.Len() == 0 {
		return 0, nil
	}
	return t.rx.Read(p)
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// SendData queues data to be read by the transport right away.
// This simulates the modem emitting unsolicited output.
func (t *TestTransport) SendData(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rx.WriteString(data)
}

// Reply queues one response per upcoming Write, in order.
func (t *TestTransport) Reply(replies ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies = append(t.replies, replies...)
}

// Written returns everything written to the transport so far.
func (t *TestTransport) Written() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.written.String()
}

// TestClock is a Clock for tests. Every call to Now advances it by a fixed
// step, so a polling loop sees time pass without real sleeping.
type TestClock struct {
	mu    sync.Mutex
	now   uint32
	step  uint32
	slept time.Duration
}

// NewTestClock returns a clock reading start that advances by step
// milliseconds on every Now.
func NewTestClock(start, step uint32) *TestClock {
	return &TestClock{now: start, step: step}
}

func (c *TestClock) Now() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now += c.step
	return now
}

func (c *TestClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += toMillis(d)
	c.slept += d
}

// Set moves the clock to ms. Going backwards or across the 32-bit wrap
// is allowed.
func (c *TestClock) Set(ms uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = ms
}

// Peek returns the current reading without advancing.
func (c *TestClock) Peek() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Slept returns the total duration passed to Sleep.
func (c *TestClock) Slept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slept
}
