package modem

import (
	"math"
	"time"
)

// Clock is the monotonic millisecond time source used for every timeout
// and for boot delay tracking. Now wraps around at 2^32; elapsed time must
// always be computed as an unsigned difference (now - then).
type Clock interface {
	Now() uint32
	Sleep(d time.Duration)
}

// SystemClock counts milliseconds since it was created, using Go's
// monotonic clock reading.
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock returns a clock starting at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

func (c *SystemClock) Now() uint32 {
	// Truncation to 32 bits is the wraparound.
	return uint32(time.Since(c.epoch).Milliseconds())
}

func (c *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// toMillis converts d into the clock's unit, saturating at the largest
// representable budget.
func toMillis(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	if ms > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ms)
}

func fromMillis(ms uint32) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
