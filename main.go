package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.bug.st/serial"

	"i4.energy/across/simgw/modem"
)

var rootCmd = &cobra.Command{
	Use:           "simgw",
	Short:         "SMS gateway and AT console for SIM800 style modems",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the modem")
	flags.Int("baud-rate", 115200, "Baud rate for serial communication")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "json", "Log format (json, console)")
	flags.String("sim-pin", "", "SIM card PIN code (if required)")
	flags.Bool("reset-dtr", false, "Reset the modem by pulsing the DTR line")
	flags.Duration("boot-delay", modem.DefaultBootDelay, "Minimum time between reset and the first command")

	rootCmd.AddCommand(serveCmd, atCmd, smsCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration for cmd and builds the logger.
func setup(cmd *cobra.Command) (*Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	config, err := LoadConfig(WithDefaults(), WithFile(path), WithEnv(), WithFlags(cmd.Flags()))
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	return config, newLogger(os.Stderr, config.LogLevel, config.LogFormat), nil
}

// openModem dials the configured serial port. reg may be nil.
func openModem(ctx context.Context, config *Config, logger *slog.Logger, reg prometheus.Registerer) (*modem.Modem, error) {
	b := modem.NewConfigBuilder().
		WithDialer(modem.SerialDialer{
			PortName: config.SerialPort,
			Mode: &serial.Mode{
				BaudRate: config.BaudRate,
				Parity:   serial.NoParity,
				DataBits: 8,
				StopBits: serial.OneStopBit,
			},
		}).
		WithLogger(logger.With("component", "modem")).
		WithCommandTimeout(config.CommandTimeout).
		WithMessageTimeout(config.MessageTimeout).
		WithBootDelay(config.BootDelay)
	if config.ResetDTR {
		b.WithDTRReset(config.ResetInverted)
	}
	if reg != nil {
		b.WithMetrics(modem.NewMetrics(reg))
	}

	modemConfig, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("create modem config: %w", err)
	}
	m, err := modem.New(ctx, modemConfig)
	if err != nil {
		return nil, fmt.Errorf("open modem on %s: %w", config.SerialPort, err)
	}
	return m, nil
}

func gatewayOptions(config *Config) GatewayOptions {
	return GatewayOptions{
		CommandTimeout:  config.CommandTimeout,
		MinSendInterval: config.MinSendInterval,
		MaxRetries:      config.MaxRetries,
	}
}
