package netsh

import (
	"context"
	"fmt"

	"golang-netenforce/internal/pkg/logging"
	"golang-netenforce/internal/port"
	"golang-netenforce/internal/types"
)

// Enforcer switches the interface between DHCP and static addressing via netsh.
type Enforcer struct {
	runner port.CommandRunner
}

// Ensure Enforcer implements the Enforcer port
var _ port.Enforcer = (*Enforcer)(nil)

// NewEnforcer creates a netsh enforcer.
func NewEnforcer(runner port.CommandRunner) *Enforcer {
	return &Enforcer{runner: runner}
}

// EnforceStatic sets address, mask and optional gateway, then the resolver.
// An absent resolver clears the static DNS servers.
func (e *Enforcer) EnforceStatic(ctx context.Context, interfaceName string, desired types.DesiredConfig) error {
	logger := logging.WithComponentAndInterface("netsh", interfaceName)
	logger.WithField("ip", desired.Address.String()).Info("Enforcing static IP")

	if !desired.Address.IsValid() || !desired.SubnetMask.IsValid() {
		return fmt.Errorf("%w: static configuration needs an address and mask", types.ErrEnforcement)
	}

	args := []string{"interface", "ip", "set", "address", interfaceName, "static",
		desired.Address.String(), desired.SubnetMask.String()}
	if desired.Gateway.IsValid() {
		args = append(args, desired.Gateway.String())
	}
	if err := e.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to set static address: %w", err)
	}

	dns := "none"
	if desired.Resolver.IsValid() {
		dns = desired.Resolver.String()
	}
	if err := e.run(ctx, "interface", "ip", "set", "dns", interfaceName, "static", dns); err != nil {
		return fmt.Errorf("failed to set static DNS: %w", err)
	}

	logger.Info("Static settings enforced")
	return nil
}

// EnforceAutomatic enables DHCP for both address and resolver.
func (e *Enforcer) EnforceAutomatic(ctx context.Context, interfaceName string) error {
	logger := logging.WithComponentAndInterface("netsh", interfaceName)
	logger.Info("Enforcing DHCP")

	if err := e.run(ctx, "interface", "ip", "set", "address", interfaceName, "dhcp"); err != nil {
		return fmt.Errorf("failed to enable DHCP address: %w", err)
	}
	if err := e.run(ctx, "interface", "ip", "set", "dns", interfaceName, "dhcp"); err != nil {
		return fmt.Errorf("failed to enable DHCP DNS: %w", err)
	}

	logger.Info("DHCP enforced")
	return nil
}

func (e *Enforcer) run(ctx context.Context, args ...string) error {
	if _, err := e.runner.Run(ctx, netshCommand, args...); err != nil {
		return fmt.Errorf("%w: %w", types.ErrEnforcement, err)
	}
	return nil
}
