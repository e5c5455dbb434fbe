package cmd

import (
	"fmt"

	"golang-netenforce/internal/adapter/infrastructure/command"
	"golang-netenforce/internal/adapter/netsh"
	"golang-netenforce/internal/pkg/config"
	"golang-netenforce/internal/pkg/logging"
	"golang-netenforce/internal/policy"
	"golang-netenforce/internal/port"
	"golang-netenforce/internal/reconciler"
)

// newBackend creates the observer and enforcer for the configured backend.
func newBackend(cfg *config.Config) (port.Observer, port.Enforcer, error) {
	runner := command.NewRunnerAdapter(cfg.CommandTimeout())

	switch cfg.Backend {
	case config.BackendNetsh:
		return netsh.NewObserver(cfg.Interface, runner), netsh.NewEnforcer(runner), nil
	case config.BackendNetlink:
		return newNetlinkBackend(cfg, runner)
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// newReconciler wires the policy table and backend into a reconciler.
func newReconciler(cfg *config.Config, table *policy.Table, opts ...reconciler.Option) (*reconciler.Reconciler, error) {
	observer, enforcer, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}

	logging.GetLogger().WithField("backend", cfg.Backend).Debug("Created network backend")

	opts = append([]reconciler.Option{reconciler.WithCallTimeout(cfg.CommandTimeout())}, opts...)
	return reconciler.New(cfg.Interface, observer, enforcer, table, opts...), nil
}

// loadConfig loads and validates the configuration named by -f.
func loadConfig(path string) (*config.Config, *policy.Table, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation error: %w", err)
	}
	table, err := cfg.PolicyTable()
	if err != nil {
		return nil, nil, fmt.Errorf("config validation error: %w", err)
	}
	return cfg, table, nil
}
