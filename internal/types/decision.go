package types

// Divergence classifies one tick's observation against the policy table.
type Divergence string

const (
	NoNetwork               Divergence = "no_network"
	UnknownNetwork          Divergence = "unknown_network"
	CompliantAutomatic      Divergence = "compliant_automatic"
	CompliantStatic         Divergence = "compliant_static"
	ViolationNeedsAutomatic Divergence = "violation_needs_automatic"
	ViolationNeedsStatic    Divergence = "violation_needs_static"
)

// Action is the corrective call a decision dispatches to the enforcer.
type Action string

const (
	ActionNone             Action = "none"
	ActionEnforceAutomatic Action = "enforce_automatic"
	ActionEnforceStatic    Action = "enforce_static"
)

// Decision is the outcome of evaluating a single tick.
type Decision struct {
	Identity   NetworkIdentity
	Observed   ObservedConfig
	Divergence Divergence
	Action     Action
	// Desired is the policy entry of a known network.
	Desired DesiredConfig
	// Reason explains violations in log-friendly form.
	Reason string
}
