// Package reconciler drives the observe, compare and enforce cycle that keeps
// the interface's addressing in line with the policy table.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-netenforce/internal/pkg/logging"
	"golang-netenforce/internal/pkg/metrics"
	"golang-netenforce/internal/policy"
	"golang-netenforce/internal/port"
	"golang-netenforce/internal/types"

	"github.com/sirupsen/logrus"
)

// DefaultCallTimeout bounds each observation and enforcement call.
const DefaultCallTimeout = 15 * time.Second

// Metric sources for failed observations.
const (
	sourceIdentity   = "identity"
	sourceAddressing = "addressing"
)

// Reconciler evaluates one tick at a time. It keeps no state between ticks.
type Reconciler struct {
	iface       string
	observer    port.Observer
	enforcer    port.Enforcer
	table       *policy.Table
	callTimeout time.Duration
	dryRun      bool
	metrics     *metrics.Metrics
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithCallTimeout sets the bound placed on each external call.
func WithCallTimeout(timeout time.Duration) Option {
	return func(r *Reconciler) {
		if timeout > 0 {
			r.callTimeout = timeout
		}
	}
}

// WithDryRun logs decisions without dispatching enforcement calls.
func WithDryRun(dryRun bool) Option {
	return func(r *Reconciler) {
		r.dryRun = dryRun
	}
}

// WithMetrics records tick and enforcement outcomes. A nil value disables recording.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// New creates a reconciler for iface.
func New(iface string, observer port.Observer, enforcer port.Enforcer, table *policy.Table, opts ...Option) *Reconciler {
	r := &Reconciler{
		iface:       iface,
		observer:    observer,
		enforcer:    enforcer,
		table:       table,
		callTimeout: DefaultCallTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Evaluate classifies one observation. desired and known are the result of
// the policy lookup for identity. Unknown networks fall back to automatic
// addressing. Static compliance compares only the mode and the address.
func Evaluate(identity types.NetworkIdentity, desired types.DesiredConfig, known bool, observed types.ObservedConfig) types.Decision {
	decision := types.Decision{
		Identity: identity,
		Observed: observed,
		Action:   types.ActionNone,
	}

	switch {
	case identity.IsAbsent():
		decision.Divergence = types.NoNetwork

	case !known:
		decision.Divergence = types.UnknownNetwork
		if !observed.DHCPEnabled {
			decision.Action = types.ActionEnforceAutomatic
			decision.Reason = "unknown network, enforcing DHCP safety net"
		}

	case desired.Mode == types.ModeStatic:
		decision.Desired = desired
		switch {
		case observed.DHCPEnabled:
			decision.Divergence = types.ViolationNeedsStatic
			decision.Action = types.ActionEnforceStatic
			decision.Reason = fmt.Sprintf("%q requires static, but DHCP detected", identity)
		case observed.CurrentAddress != desired.Address:
			decision.Divergence = types.ViolationNeedsStatic
			decision.Action = types.ActionEnforceStatic
			decision.Reason = fmt.Sprintf("IP is %s, expected %s", addrString(observed), desired.Address)
		default:
			decision.Divergence = types.CompliantStatic
		}

	default:
		decision.Desired = desired
		if observed.DHCPEnabled {
			decision.Divergence = types.CompliantAutomatic
		} else {
			decision.Divergence = types.ViolationNeedsAutomatic
			decision.Action = types.ActionEnforceAutomatic
			decision.Reason = fmt.Sprintf("%q requires DHCP, but static detected", identity)
		}
	}

	return decision
}

// Tick runs one observe, compare and enforce cycle. Observation failures
// degrade to absent or default values and enforcement failures are logged;
// neither is returned.
func (r *Reconciler) Tick(ctx context.Context) types.Decision {
	logger := logging.WithComponentAndInterface("reconciler", r.iface)

	identity := r.observeIdentity(ctx, logger)
	if identity.IsAbsent() {
		decision := Evaluate(identity, types.DesiredConfig{}, false, types.ObservedConfig{})
		logger.Debug("No network associated, leaving configuration as is")
		r.metrics.RecordTick(decision.Divergence)
		return decision
	}

	observed := r.observeAddressing(ctx, logger)
	desired, known := r.table.Lookup(identity)
	decision := Evaluate(identity, desired, known, observed)

	logger = logger.WithFields(logrus.Fields{
		"network":  string(identity),
		"observed": observed.String(),
	})
	r.report(logger, decision)
	if decision.Action != types.ActionNone {
		r.enforce(ctx, logger, decision)
	}

	r.metrics.RecordTick(decision.Divergence)
	return decision
}

// Run performs one tick immediately and then one per ticker event until ctx
// is cancelled. The ticker is reset after every tick so a full poll interval
// separates the end of one tick from the start of the next. It always
// returns ctx.Err().
func (r *Reconciler) Run(ctx context.Context, ticker port.Ticker) error {
	logger := logging.WithComponentAndInterface("reconciler", r.iface)
	logger.WithFields(logrus.Fields{
		"networks": r.table.Len(),
		"dry_run":  r.dryRun,
	}).Info("Enforcer running")

	r.Tick(ctx)
	ticker.Reset()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reconciler stopped due to context cancellation")
			return ctx.Err()
		case <-ticker.C():
			r.Tick(ctx)
			ticker.Reset()
		}
	}
}

func (r *Reconciler) observeIdentity(ctx context.Context, logger *logrus.Entry) types.NetworkIdentity {
	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	identity, err := r.observer.NetworkIdentity(callCtx)
	if err != nil {
		logger.WithError(err).Debug("Network identity unavailable, treating as disconnected")
		r.metrics.RecordObservationFailure(sourceIdentity)
		return ""
	}
	return identity
}

func (r *Reconciler) observeAddressing(ctx context.Context, logger *logrus.Entry) types.ObservedConfig {
	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	observed, err := r.observer.AddressingState(callCtx, r.iface)
	if err != nil {
		logger.WithError(err).Debug("Addressing state unavailable, assuming defaults")
		r.metrics.RecordObservationFailure(sourceAddressing)
		return types.ObservedConfig{}
	}
	return observed
}

func (r *Reconciler) report(logger *logrus.Entry, decision types.Decision) {
	switch decision.Divergence {
	case types.UnknownNetwork:
		if decision.Action != types.ActionNone {
			logger.Info("Unknown network detected, enforcing DHCP safety net")
		} else {
			logger.Debug("Unknown network already on DHCP")
		}
	case types.ViolationNeedsAutomatic, types.ViolationNeedsStatic:
		logger.WithField("reason", decision.Reason).Warn("Policy violation detected")
	default:
		logger.WithField("state", string(decision.Divergence)).Debug("Interface is compliant")
	}
}

func (r *Reconciler) enforce(ctx context.Context, logger *logrus.Entry, decision types.Decision) {
	logger = logger.WithField("action", string(decision.Action))
	if r.dryRun {
		logger.Info("Dry run, skipping enforcement")
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	start := time.Now()
	var err error
	switch decision.Action {
	case types.ActionEnforceAutomatic:
		err = r.enforcer.EnforceAutomatic(callCtx, r.iface)
	case types.ActionEnforceStatic:
		err = r.enforcer.EnforceStatic(callCtx, r.iface, decision.Desired)
	}
	r.metrics.RecordEnforcement(decision.Action, err, time.Since(start))

	if err != nil {
		if !errors.Is(err, types.ErrEnforcement) {
			err = fmt.Errorf("%w: %w", types.ErrEnforcement, err)
		}
		logger.WithError(err).Error("Failed to apply configuration, retrying next tick")
		return
	}
	logger.Info("Configuration enforced")
}

func addrString(observed types.ObservedConfig) string {
	if !observed.CurrentAddress.IsValid() {
		return "none"
	}
	return observed.CurrentAddress.String()
}
