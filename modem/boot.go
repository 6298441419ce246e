package modem

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"i4.energy/across/simgw/at"
)

// Begin releases the reset line and starts the boot delay clock. Call it
// once after New when the modem is powered together with the host.
func (m *Modem) Begin() error {
	if m.closed {
		return ErrAlreadyClosed
	}
	if err := m.reset.SetLevel(true); err != nil {
		return fmt.Errorf("release reset line: %w", err)
	}
	m.bootTS = m.clock.Now()
	return nil
}

// Reset pulses the reset line low and restarts the boot delay clock.
func (m *Modem) Reset() error {
	if m.closed {
		return ErrAlreadyClosed
	}
	if err := m.reset.SetLevel(false); err != nil {
		return fmt.Errorf("assert reset line: %w", err)
	}
	m.clock.Sleep(m.config.resetSettle)
	if err := m.reset.SetLevel(true); err != nil {
		return fmt.Errorf("release reset line: %w", err)
	}
	m.bootTS = m.clock.Now()
	m.log.Info("modem reset", "settle", m.config.resetSettle)
	return nil
}

// ensureBooted waits, draining notifications, until atLeast has
// passed since the last reset.
func (m *Modem) ensureBooted(ctx context.Context, atLeast time.Duration) error {
	uptime := m.clock.Now() - m.bootTS
	want := toMillis(atLeast)
	if uptime >= want {
		return nil
	}
	m.log.Debug("waiting for modem to boot", "remaining", fromMillis(want-uptime))
	return m.idleWait(ctx, want-uptime)
}

type startupStep struct {
	desc string
	cmd  string
}

func startupSteps(baudRate int) []startupStep {
	return []startupStep{
		{"detect baud rate", at.CmdAutoBaud},
		{"set baud rate", at.CmdSetBaudRate + strconv.Itoa(baudRate)},
		{"select SMS text mode", at.CmdSetTextMode},
		{"route SMS to serial", at.CmdRouteSMS},
		{"disable verbose errors", at.CmdTerseErrors},
		{"disable echo", at.CmdEchoOff},
		{"save configuration", at.CmdSaveProfile},
	}
}

// Start waits until bootDelay has passed since the last reset and then
// configures the modem for text mode SMS delivered over the serial link.
//
// The steps run in a fixed order and the first one that does not answer OK
// aborts the sequence; its Result is returned as is. The error is only set
// when the transport fails or ctx is done.
func (m *Modem) Start(ctx context.Context, baudRate int, bootDelay time.Duration) (at.Result, error) {
	if m.closed {
		return at.Timeout, ErrAlreadyClosed
	}
	if err := m.ensureBooted(ctx, bootDelay); err != nil {
		return at.Timeout, fmt.Errorf("wait for boot: %w", err)
	}

	for i, step := range startupSteps(baudRate) {
		res, err := m.SendCommand(ctx, step.cmd)
		if err != nil {
			return res, fmt.Errorf("%s: %w", step.desc, err)
		}
		if res != at.Success {
			m.log.Warn("startup aborted", "step", i+1, "description", step.desc, "result", res)
			return res, nil
		}
		m.log.Debug("startup step done", "step", i+1, "description", step.desc)
	}

	m.log.Info("modem configured", "baud_rate", baudRate)
	return at.Success, nil
}

// StartDefault is Start with the configured boot delay.
func (m *Modem) StartDefault(ctx context.Context, baudRate int) (at.Result, error) {
	return m.Start(ctx, baudRate, m.config.bootDelay)
}
