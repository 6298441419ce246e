package modem

import (
	"context"
	"fmt"
	"time"

	"i4.energy/across/simgw/at"
)

// waitResult polls the transport until a terminal line arrives or more than
// timeout milliseconds have passed. Every other completed line goes to the
// hooks and does not end the wait. At the deadline an open line holding
// exactly "> " is reported as Prompt.
//
// The loop never sleeps; the transport's read timeout paces it.
func (m *Modem) waitResult(ctx context.Context, timeout uint32) (at.Result, error) {
	start := m.clock.Now()
	for {
		if m.in.available() {
			ev := m.line.Feed(m.in.readByte())
			switch ev.Kind {
			case at.EventTerminal:
				return ev.Result, nil
			case at.EventLine:
				m.dispatch(ev)
			}
			continue
		}
		if err := m.in.err; err != nil {
			return at.Timeout, fmt.Errorf("read response: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return at.Timeout, err
		}
		if m.clock.Now()-start > timeout {
			if m.line.IsPrompt() {
				m.line.Reset()
				return at.Prompt, nil
			}
			return at.Timeout, nil
		}
	}
}

func (m *Modem) dispatch(ev at.Event) {
	matched := m.hooks.Dispatch(ev.Line)
	m.config.metrics.observeLine(matched, ev.Truncated)
	if ev.Truncated {
		m.log.Warn("line truncated", "capacity", at.LineCapacity, "line", string(ev.Line))
	}
	if !matched {
		m.log.Debug("unclaimed line", "line", string(ev.Line))
	}
}

// Wait lets the modem talk for up to budget while the caller has nothing to
// send, dispatching any notification that arrives to the hooks. It returns
// early once a polling slice times out with nothing more pending.
//
// Use Wait wherever the program would otherwise sleep.
func (m *Modem) Wait(ctx context.Context, budget time.Duration) error {
	if m.closed {
		return ErrAlreadyClosed
	}
	return m.idleWait(ctx, toMillis(budget))
}

func (m *Modem) idleWait(ctx context.Context, budget uint32) error {
	start := m.clock.Now()
	remaining := budget
	for {
		res, err := m.waitResult(ctx, remaining)
		if err != nil {
			return err
		}
		if res == at.Timeout {
			return nil
		}
		elapsed := m.clock.Now() - start
		if elapsed >= budget {
			return nil
		}
		remaining = budget - elapsed
	}
}
