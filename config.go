package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the server listens on (e.g. "0.0.0.0:8080")
	BindAddress string `yaml:"bind_address"`
	// SerialPort is the path to the modem's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string `yaml:"serial_port"`
	// BaudRate is used to open the port and is written to the modem with AT+IPR
	BaudRate int `yaml:"baud_rate"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`
	// LogFormat is "json" or "console"
	LogFormat string `yaml:"log_format"`
	// SimPIN is the SIM card PIN code
	SimPIN string `yaml:"sim_pin"`
	// ResetDTR wires the modem reset input to the port's DTR line
	ResetDTR bool `yaml:"reset_dtr"`
	// ResetInverted makes the reset line active high
	ResetInverted bool `yaml:"reset_inverted"`
	// BootDelay is the minimum time between reset and the first command
	BootDelay time.Duration `yaml:"boot_delay"`
	// CommandTimeout bounds the wait for the answer to a command
	CommandTimeout time.Duration `yaml:"command_timeout"`
	// MessageTimeout bounds the wait for the answer to an SMS body
	MessageTimeout time.Duration `yaml:"message_timeout"`
	// IdleSlice is how long the gateway listens for notifications at a time
	IdleSlice time.Duration `yaml:"idle_slice"`
	// MinSendInterval is the minimum time between two outgoing messages
	MinSendInterval time.Duration `yaml:"min_send_interval"`
	// MaxRetries is how many times a rejected message is sent again
	MaxRetries int `yaml:"max_retries"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 115200
		c.LogLevel = "info"
		c.LogFormat = "json"
		c.BootDelay = 30 * time.Second
		c.CommandTimeout = time.Second
		c.MessageTimeout = 30 * time.Second
		c.IdleSlice = time.Second
		c.MinSendInterval = 2 * time.Second
		c.MaxRetries = 3
		return nil
	}
}

// WithFile overlays the YAML file at path. An empty path is skipped.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if format := os.Getenv("LOG_FORMAT"); format != "" {
			c.LogFormat = format
		}

		if simPIN := os.Getenv("SIM_PIN"); simPIN != "" {
			c.SimPIN = simPIN
		}

		if dtr := os.Getenv("RESET_DTR"); dtr != "" {
			if b, err := strconv.ParseBool(dtr); err == nil {
				c.ResetDTR = b
			}
		}

		if delay := os.Getenv("BOOT_DELAY"); delay != "" {
			if d, err := time.ParseDuration(delay); err == nil {
				c.BootDelay = d
			}
		}

		return nil
	}
}

// WithFlags loads configuration from the command-line flags that were set
func WithFlags(fSet *pflag.FlagSet) ConfigOption {
	return func(c *Config) error {
		var err error
		fSet.Visit(func(f *pflag.Flag) {
			v := f.Value.String()
			switch f.Name {
			case "bind-address":
				c.BindAddress = v
			case "serial-port":
				c.SerialPort = v
			case "baud-rate":
				if b, perr := strconv.Atoi(v); perr == nil {
					c.BaudRate = b
				}
			case "log-level":
				c.LogLevel = v
			case "log-format":
				c.LogFormat = v
			case "sim-pin":
				c.SimPIN = v
			case "reset-dtr":
				if b, perr := strconv.ParseBool(v); perr == nil {
					c.ResetDTR = b
				} else {
					err = perr
				}
			case "boot-delay":
				if d, perr := time.ParseDuration(v); perr == nil {
					c.BootDelay = d
				} else {
					err = perr
				}
			}
		})
		return err
	}
}
