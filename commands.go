package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"i4.energy/across/simgw/at"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Configure the modem and serve the HTTP SMS gateway",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var atCmd = &cobra.Command{
	Use:   "at <command>",
	Short: "Send one AT command (without the AT prefix) and print the reply",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAT,
}

var smsCmd = &cobra.Command{
	Use:   "sms <recipient> <text>",
	Short: "Send a text message",
	Args:  cobra.ExactArgs(2),
	RunE:  runSMS,
}

func init() {
	serveCmd.Flags().String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	serveCmd.Flags().Bool("reset", false, "Pulse the reset line before configuring the modem")
	atCmd.Flags().Duration("timeout", 0, "Response timeout (defaults to the command timeout)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	config, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m, err := openModem(ctx, config, logger, reg)
	if err != nil {
		return err
	}
	defer func() {
		logger.Info("Closing modem connection")
		if err := m.Close(); err != nil {
			logger.Error("Failed to close modem", "error", err)
		}
	}()

	gw := NewGateway(m, logger.With("component", "gateway"), gatewayOptions(config))
	reset, _ := cmd.Flags().GetBool("reset")
	logger.Info("Configuring modem", "port", config.SerialPort, "baud_rate", config.BaudRate, "reset", reset)
	if err := gw.Bringup(ctx, reset, config.BaudRate, config.BootDelay, config.SimPIN); err != nil {
		return fmt.Errorf("bring up modem: %w", err)
	}

	httpServer := &http.Server{
		Addr:    config.BindAddress,
		Handler: NewServer(logger.With("component", "server"), gw, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	}

	errs := make(chan error, 2)
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()
	go func() {
		if err := gw.Run(ctx, config.IdleSlice); err != nil && !errors.Is(err, context.Canceled) {
			errs <- fmt.Errorf("notification loop failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err = <-errs:
		logger.Error("Shutting down", "error", err)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
	defer stop()
	logger.Info("Closing HTTP server")
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		logger.Error("Failed to gracefully shutdown server", "error", serr)
	}
	return err
}

func runAT(cmd *cobra.Command, args []string) error {
	config, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	m, err := openModem(cmd.Context(), config, logger, nil)
	if err != nil {
		return err
	}
	defer m.Close()

	command := ""
	if len(args) == 1 {
		command = strings.TrimPrefix(strings.TrimPrefix(args[0], "AT"), "at")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	gw := NewGateway(m, logger, gatewayOptions(config))
	res, lines, err := gw.Command(cmd.Context(), command, timeout)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	fmt.Fprintln(out, strings.ToUpper(res.String()))
	if res != at.Success && res != at.Prompt {
		return fmt.Errorf("AT%s: %s", command, res)
	}
	return nil
}

func runSMS(cmd *cobra.Command, args []string) error {
	config, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	m, err := openModem(cmd.Context(), config, logger, nil)
	if err != nil {
		return err
	}
	defer m.Close()

	gw := NewGateway(m, logger, gatewayOptions(config))
	ref, err := gw.SendSMS(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sent, reference %s\n", ref)
	return nil
}
