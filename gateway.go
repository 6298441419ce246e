package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"i4.energy/across/simgw/at"
	"i4.energy/across/simgw/modem"
)

const maxNotifications = 50

// Notification is an unsolicited line captured from the modem.
type Notification struct {
	Prefix string    `json:"prefix"`
	Line   string    `json:"line"`
	Time   time.Time `json:"time"`
}

// transcript collects every line no other hook wants while a raw command
// is running. It is registered first so it is consulted last.
type transcript struct {
	active bool
	lines  []string
}

func (t *transcript) Capture(line []byte) bool {
	if !t.active {
		return false
	}
	t.lines = append(t.lines, string(line))
	return true
}

// GatewayOptions tunes how a Gateway uses the modem.
type GatewayOptions struct {
	CommandTimeout  time.Duration
	MinSendInterval time.Duration
	MaxRetries      int
}

// Gateway shares one modem between the HTTP handlers and the idle loop
// that listens for notifications. The modem allows a single operation at a
// time, so every use goes through mu.
type Gateway struct {
	mu     sync.Mutex
	modem  *modem.Modem
	logger *slog.Logger
	opts   GatewayOptions

	raw    *transcript
	urcs   []*at.Hook
	recent []Notification
	// lastSend is when the last message left, for MinSendInterval
	lastSend time.Time
}

// NewGateway registers the notification hooks on m.
func NewGateway(m *modem.Modem, logger *slog.Logger, opts GatewayOptions) *Gateway {
	g := &Gateway{
		modem:  m,
		logger: logger,
		opts:   opts,
		raw:    &transcript{},
		urcs: []*at.Hook{
			at.NewHook(at.UrcNewMsg),
			at.NewHook(at.UrcMsgDirect),
			at.NewHook(at.UrcCall),
		},
	}
	m.RegisterHook(g.raw)
	for _, h := range g.urcs {
		m.RegisterHook(h)
	}
	return g
}

// Bringup resets the modem (or just starts the boot clock), runs the
// startup configuration and unlocks the SIM if a PIN is given.
func (g *Gateway) Bringup(ctx context.Context, reset bool, baudRate int, bootDelay time.Duration, simPIN string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.modem.Begin
	if reset {
		start = g.modem.Reset
	}
	if err := start(); err != nil {
		return err
	}

	res, err := g.modem.Start(ctx, baudRate, bootDelay)
	if err != nil {
		return fmt.Errorf("start modem: %w", err)
	}
	if res != at.Success {
		return fmt.Errorf("start modem: %w: %s", modem.ErrCommandFailed, res)
	}

	if simPIN != "" {
		res, err := g.modem.SendCommand(ctx, fmt.Sprintf(`+CPIN="%s"`, simPIN))
		if err != nil {
			return fmt.Errorf("enter SIM PIN: %w", err)
		}
		if res != at.Success {
			return fmt.Errorf("enter SIM PIN: %w: %s", modem.ErrCommandFailed, res)
		}
	}
	g.collect()
	return nil
}

// Run listens for notifications in slices of the given length until ctx
// is done. Between slices the HTTP handlers get their turn at the modem.
func (g *Gateway) Run(ctx context.Context, slice time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := g.idle(ctx, slice); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

func (g *Gateway) idle(ctx context.Context, slice time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.modem.Wait(ctx, slice)
	g.collect()
	return err
}

// collect moves captured notifications into the recent list. Callers hold mu.
func (g *Gateway) collect() {
	for _, h := range g.urcs {
		if !h.Captured() {
			continue
		}
		n := Notification{Prefix: h.Prefix(), Line: h.String(), Time: time.Now()}
		h.Reset()
		g.logger.Info("notification", "prefix", n.Prefix, "line", n.Line)
		g.recent = append(g.recent, n)
		if len(g.recent) > maxNotifications {
			g.recent = g.recent[len(g.recent)-maxNotifications:]
		}
	}
}

// Notifications returns the most recent notifications, oldest first.
func (g *Gateway) Notifications() []Notification {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Notification, len(g.recent))
	copy(out, g.recent)
	return out
}

// Command sends a raw AT command and returns the device's answer together
// with every reply line no notification hook claimed.
func (g *Gateway) Command(ctx context.Context, cmd string, timeout time.Duration) (at.Result, []string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if timeout <= 0 {
		timeout = g.opts.CommandTimeout
	}

	g.raw.active, g.raw.lines = true, nil
	res, err := g.modem.SendCommandTimeout(ctx, cmd, timeout)
	lines := g.raw.lines
	g.raw.active, g.raw.lines = false, nil

	g.collect()
	return res, lines, err
}

// SendSMS sends a message, keeping MinSendInterval between messages and
// retrying up to MaxRetries times when the modem rejects it. Transport
// failures are not retried.
func (g *Gateway) SendSMS(ctx context.Context, to, text string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	defer g.collect()

	var err error
	for attempt := 0; attempt <= g.opts.MaxRetries; attempt++ {
		if wait := g.opts.MinSendInterval - time.Since(g.lastSend); wait > 0 {
			if err := g.modem.Wait(ctx, wait); err != nil {
				return "", err
			}
		}

		var ref string
		ref, err = g.modem.SendSMS(ctx, to, text)
		g.lastSend = time.Now()
		if err == nil {
			return ref, nil
		}
		if !errors.Is(err, modem.ErrNoPrompt) && !errors.Is(err, modem.ErrCommandFailed) {
			return "", err
		}
		g.logger.Warn("SMS rejected", "to", to, "attempt", attempt+1, "error", err)
	}
	return "", err
}
