package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-netenforce/internal/adapter/infrastructure/clock"
	"golang-netenforce/internal/pkg/logging"
	"golang-netenforce/internal/pkg/metrics"
	"golang-netenforce/internal/pkg/privilege"
	"golang-netenforce/internal/reconciler"

	"github.com/spf13/cobra"
)

// privilegeExitDelay keeps the warning readable when started from a console that closes on exit.
const privilegeExitDelay = 5 * time.Second

var (
	configFlag string
	dryRunFlag bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Enforce the network policy on the configured interface until stopped",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, table, err := loadConfig(configFlag)
		if err != nil {
			return err
		}

		// Initialize logging
		logging.InitLogger(cfg.Logging)
		logger := logging.WithComponentAndInterface("serve", cfg.Interface)

		if !dryRunFlag {
			if err := privilege.Check(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: %v\n", err)
				time.Sleep(privilegeExitDelay)
				return err
			}
		}

		m := metrics.New(cfg.Metrics)
		rec, err := newReconciler(cfg, table,
			reconciler.WithDryRun(dryRunFlag),
			reconciler.WithMetrics(m),
		)
		if err != nil {
			return err
		}

		networks := make([]string, 0, table.Len())
		for _, identity := range table.Identities() {
			networks = append(networks, string(identity))
		}
		logger.WithFields(map[string]interface{}{
			"config_file":   configFlag,
			"backend":       cfg.Backend,
			"poll_interval": cfg.PollInterval().String(),
			"networks":      networks,
		}).Info("Starting enforcer")

		// Create context for graceful shutdown
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case sig := <-sigChan:
				logger.WithField("signal", sig.String()).Info("Received shutdown signal")
				cancel()
			case <-ctx.Done():
			}
		}()

		if cfg.Metrics.Enabled {
			go func() {
				if err := m.Serve(ctx); err != nil {
					logger.WithError(err).Error("Metrics server failed")
				}
			}()
		}

		ticker := clock.NewTickerAdapter(cfg.PollInterval())
		defer ticker.Stop()

		if err := rec.Run(ctx, ticker); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		logger.Info("Enforcer stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configFlag, "config", "f", "", "Path to config file (YAML); built-in defaults when omitted")
	serveCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Log decisions without changing the interface")
	rootCmd.AddCommand(serveCmd)
}
