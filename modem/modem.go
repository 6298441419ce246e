// Package modem drives a GSM modem over a line oriented AT command link.
//
// A Modem has a single flow of control: every operation writes to the
// transport and then polls it until the device answers with a terminal
// line or the time budget runs out. Lines that are not terminal are handed
// to the registered hooks, which is how both command replies and
// unsolicited notifications are captured.
//
// Only one operation may be in progress at a time. A Modem is not safe for
// concurrent use; callers sharing one must serialize access themselves.
package modem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"i4.energy/across/simgw/at"
)

// Modem represents a GSM/3G/4G cellular modem that communicates via AT commands.
type Modem struct {
	// transport provides the physical connection to the modem
	transport Transport
	// in is the non-blocking reader over transport
	in *stream
	// config contains the modem configuration settings
	config Config
	clock  Clock
	reset  ResetLine
	log    *slog.Logger
	// closed indicates if the modem has been shut down
	closed bool

	line  at.Accumulator
	hooks at.HookRegistry
	// sendRef captures the message reference of the last AT+CMGS
	sendRef *at.Hook

	// bootTS is the clock reading taken when the modem was last reset
	bootTS uint32
}

// New creates a new Modem instance with the given configuration. It opens
// the transport but does not talk to the device; call Begin or Reset and
// then Start to bring the modem up.
func New(ctx context.Context, config Config) (*Modem, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	transport, err := config.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	reset := config.resetLine
	if reset == nil {
		reset = NopResetLine{}
		if config.dtrReset {
			dtr, ok := transport.(DTRSetter)
			if !ok {
				transport.Close()
				return nil, ErrNoResetLine
			}
			reset = DTRResetLine{Port: dtr, Inverted: config.dtrInverted}
		}
	}

	m := &Modem{
		transport: transport,
		in:        newStream(transport),
		config:    config,
		clock:     config.clock,
		reset:     reset,
		log:       config.logger,
		sendRef:   at.NewHook(at.UrcSendRef),
	}
	m.hooks.Register(m.sendRef)
	return m, nil
}

// RegisterHook adds h to the hooks consulted for every non-terminal line.
// Hooks registered later take precedence over earlier ones when several
// prefixes match. The Modem keeps a reference to h; it is never removed.
func (m *Modem) RegisterHook(h at.Observer) {
	m.hooks.Register(h)
}

// Send writes a command or a continuation and waits up to timeout for the
// response.
//
// A command is framed as "AT" + cmd + CR. A continuation, such as an SMS
// body after the "> " prompt, is framed as cmd + Ctrl-Z. An empty cmd sends
// just the framing.
//
// The returned error is only set when the transport fails or ctx is done;
// the device's answer is reported through the Result.
func (m *Modem) Send(ctx context.Context, cmd string, timeout time.Duration, continuation bool) (at.Result, error) {
	if m.closed {
		return at.Timeout, ErrAlreadyClosed
	}

	frame := make([]byte, 0, len(at.CommandPrefix)+len(cmd)+1)
	if !continuation {
		frame = append(frame, at.CommandPrefix...)
	}
	frame = append(frame, cmd...)
	if continuation {
		frame = append(frame, at.CtrlZ)
	} else {
		frame = append(frame, at.CR)
	}
	if _, err := m.transport.Write(frame); err != nil {
		return at.Timeout, fmt.Errorf("write command %q: %w", cmd, err)
	}

	res, err := m.waitResult(ctx, toMillis(timeout))
	m.config.metrics.observeCommand(res)
	m.log.Debug("command finished", "command", cmd, "continuation", continuation, "result", res)
	return res, err
}

// SendCommand sends "AT"+cmd with the configured command timeout.
func (m *Modem) SendCommand(ctx context.Context, cmd string) (at.Result, error) {
	return m.Send(ctx, cmd, m.config.cmdTimeout, false)
}

// SendCommandTimeout sends "AT"+cmd and waits up to timeout.
func (m *Modem) SendCommandTimeout(ctx context.Context, cmd string, timeout time.Duration) (at.Result, error) {
	return m.Send(ctx, cmd, timeout, false)
}

// SendMessage sends text terminated by Ctrl-Z with the configured message
// timeout.
func (m *Modem) SendMessage(ctx context.Context, text string) (at.Result, error) {
	return m.Send(ctx, text, m.config.msgTimeout, true)
}

// SendMessageTimeout sends text terminated by Ctrl-Z and waits up to timeout.
func (m *Modem) SendMessageTimeout(ctx context.Context, text string, timeout time.Duration) (at.Result, error) {
	return m.Send(ctx, text, timeout, true)
}

// Close shuts down the modem and releases the transport. After calling
// Close, the modem cannot be reused.
func (m *Modem) Close() error {
	if m.closed {
		return ErrAlreadyClosed
	}
	m.closed = true
	return m.transport.Close()
}
