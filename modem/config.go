package modem

import (
	"io"
	"log/slog"
	"time"
)

// Defaults for the timing parameters of a Modem.
const (
	DefaultCommandTimeout = time.Second
	DefaultMessageTimeout = 30 * time.Second
	DefaultBootDelay      = 30 * time.Second
	DefaultResetSettle    = 100 * time.Millisecond
)

// Config holds everything New needs. Build it with NewConfigBuilder.
type Config struct {
	dialer      Dialer
	resetLine   ResetLine
	dtrReset    bool
	dtrInverted bool
	clock       Clock
	logger      *slog.Logger
	metrics     *Metrics

	cmdTimeout  time.Duration
	msgTimeout  time.Duration
	bootDelay   time.Duration
	resetSettle time.Duration
}

func (c *Config) validate() error {
	if c.dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.clock == nil {
		c.clock = NewSystemClock()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.cmdTimeout <= 0 {
		c.cmdTimeout = DefaultCommandTimeout
	}
	if c.msgTimeout <= 0 {
		c.msgTimeout = DefaultMessageTimeout
	}
	if c.bootDelay <= 0 {
		c.bootDelay = DefaultBootDelay
	}
	if c.resetSettle <= 0 {
		c.resetSettle = DefaultResetSettle
	}
}

// ConfigBuilder assembles a Config step by step.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns a builder with every option at its default.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets how the Transport is opened. Required.
func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.dialer = d
	return b
}

// WithResetLine sets the output wired to the modem's reset input.
func (b *ConfigBuilder) WithResetLine(l ResetLine) *ConfigBuilder {
	b.config.resetLine = l
	return b
}

// WithDTRReset pulses the serial port's DTR line to reset the modem. It
// is ignored when an explicit ResetLine is set.
func (b *ConfigBuilder) WithDTRReset(inverted bool) *ConfigBuilder {
	b.config.dtrReset = true
	b.config.dtrInverted = inverted
	return b
}

func (b *ConfigBuilder) WithClock(c Clock) *ConfigBuilder {
	b.config.clock = c
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.logger = l
	return b
}

func (b *ConfigBuilder) WithMetrics(m *Metrics) *ConfigBuilder {
	b.config.metrics = m
	return b
}

// WithCommandTimeout sets the response budget used by SendCommand.
func (b *ConfigBuilder) WithCommandTimeout(d time.Duration) *ConfigBuilder {
	b.config.cmdTimeout = d
	return b
}

// WithMessageTimeout sets the response budget used by SendMessage.
func (b *ConfigBuilder) WithMessageTimeout(d time.Duration) *ConfigBuilder {
	b.config.msgTimeout = d
	return b
}

// WithBootDelay sets the minimum time between reset and the first command
// sent by StartDefault.
func (b *ConfigBuilder) WithBootDelay(d time.Duration) *ConfigBuilder {
	b.config.bootDelay = d
	return b
}

// WithResetSettle sets how long Reset holds the reset line low.
func (b *ConfigBuilder) WithResetSettle(d time.Duration) *ConfigBuilder {
	b.config.resetSettle = d
	return b
}

// Build validates the configuration and fills in defaults.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	c.setDefaults()
	return c, nil
}
