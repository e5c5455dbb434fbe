package cmd

import (
	"context"
	"fmt"
	"io"

	"golang-netenforce/internal/pkg/logging"
	"golang-netenforce/internal/reconciler"
	"golang-netenforce/internal/types"

	"github.com/spf13/cobra"
)

var checkConfigFlag string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Observe the interface once and print the decision without enforcing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, table, err := loadConfig(checkConfigFlag)
		if err != nil {
			return err
		}

		logging.InitLoggerWithOutput(cfg.Logging, cmd.ErrOrStderr())

		rec, err := newReconciler(cfg, table, reconciler.WithDryRun(true))
		if err != nil {
			return err
		}

		decision := rec.Tick(context.Background())
		printDecision(cmd.OutOrStdout(), cfg.Interface, decision)
		return nil
	},
}

func printDecision(w io.Writer, iface string, decision types.Decision) {
	network := string(decision.Identity)
	if decision.Identity.IsAbsent() {
		network = "(none)"
	}

	fmt.Fprintf(w, "Interface: %s\n", iface)
	fmt.Fprintf(w, "Network:   %s\n", network)
	if !decision.Identity.IsAbsent() {
		fmt.Fprintf(w, "Observed:  %s\n", decision.Observed)
	}
	fmt.Fprintf(w, "State:     %s\n", decision.Divergence)
	fmt.Fprintf(w, "Action:    %s\n", decision.Action)
	if decision.Reason != "" {
		fmt.Fprintf(w, "Reason:    %s\n", decision.Reason)
	}
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfigFlag, "config", "f", "", "Path to config file (YAML); built-in defaults when omitted")
	rootCmd.AddCommand(checkCmd)
}
