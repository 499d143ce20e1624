package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grovetools/catalogd/cli"
	"github.com/grovetools/catalogd/config"
	"github.com/grovetools/catalogd/internal/catalogd/configwatch"
	"github.com/grovetools/catalogd/internal/catalogd/pidfile"
	"github.com/grovetools/catalogd/internal/catalogd/server"
	"github.com/grovetools/catalogd/internal/catalogd/store"
	"github.com/grovetools/catalogd/logging"
	"github.com/grovetools/catalogd/pkg/client"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/grovetools/catalogd/pkg/paths"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewServeCmd returns the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog server in the foreground",
		Long: `Start the catalog server. The catalog is seeded from the built-in samples
and catalog.cats in catalogd.yml, and lives only as long as the process.`,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().Bool("no-seed", false, "Start with an empty catalog")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger("catalogd")
	opts := cli.GetOptions(cmd)
	if opts.Verbose {
		logging.SetLevel(logrus.DebugLevel)
	}

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	noSeed, _ := cmd.Flags().GetBool("no-seed")

	// 1. Acquire Lock
	pidPath := paths.PidFilePath()
	if err := pidfile.Acquire(pidPath); err != nil {
		return err
	}
	defer func() {
		if err := pidfile.Release(pidPath); err != nil {
			logger.Errorf("Failed to release pidfile: %v", err)
		}
	}()

	// 2. Seed the store
	st := store.New(seedCats(cfg, noSeed)...)

	srv, err := server.New(st, cfg.Server, logger)
	if err != nil {
		return err
	}

	// 3. Handle Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Watch the config file for logging changes
	if cfg.Server.WatchEnabled() && cfg.Path != "" {
		debounce := time.Duration(cfg.Server.ConfigDebounceMs) * time.Millisecond
		watcher, err := configwatch.New(cfg.Path, debounce, func(newCfg *config.Config) {
			if err := logging.ApplyConfig(newCfg); err != nil {
				logger.WithError(err).Warn("Failed to apply logging configuration")
			}
		})
		if err != nil {
			logger.WithError(err).Warn("Config watching disabled")
		} else {
			defer watcher.Close()
			go watcher.Start(ctx)
		}
	}

	// 5. Start Server
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.Server.Addr)
	}()

	logger.WithFields(logrus.Fields{
		"pid":     os.Getpid(),
		"entries": st.Len(),
	}).Info("Starting catalogd")

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received stop signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// seedCats returns the samples (unless disabled) followed by configured entries.
func seedCats(cfg *config.Config, noSeed bool) []models.Cat {
	var seed []models.Cat
	if cfg.Catalog.SeedEnabled() && !noSeed {
		seed = append(seed, store.SampleCats()...)
	}
	return append(seed, cfg.Catalog.Cats...)
}

// NewStopCmd returns the stop command.
func NewStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			pid, err := pidfile.Stop(paths.PidFilePath(), timeout)
			if err != nil {
				return err
			}
			logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).
				Success(fmt.Sprintf("Stopped catalogd (PID %d)", pid))
			return nil
		},
	}
	cmd.Flags().Duration("timeout", 10*time.Second, "How long to wait for the server to exit")
	return cmd
}

type statusReport struct {
	Running bool   `json:"running"`
	PID     int    `json:"pid,omitempty"`
	Addr    string `json:"addr"`
	Healthy bool   `json:"healthy"`
}

// NewStatusCmd returns the status command.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			running, pid, err := pidfile.IsRunning(paths.PidFilePath())
			if err != nil {
				return fmt.Errorf("error checking status: %w", err)
			}

			addr, err := cli.ServerAddr(cmd)
			if err != nil {
				return err
			}

			c := client.New(addr)
			defer c.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
			defer cancel()

			report := statusReport{
				Running: running,
				PID:     pid,
				Addr:    c.BaseURL(),
				Healthy: c.IsRunning(ctx),
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			pretty := logging.NewPrettyLogger().WithWriter(out)
			switch {
			case report.Healthy && running:
				pretty.Success(fmt.Sprintf("Running (PID: %d)", pid))
			case report.Healthy:
				pretty.Success("Reachable")
			case running:
				pretty.WarnPretty(fmt.Sprintf("Process %d is running but not answering", pid))
			default:
				pretty.InfoPretty("Stopped")
			}
			pretty.Field("Address", report.Addr)
			return nil
		},
	}
}
