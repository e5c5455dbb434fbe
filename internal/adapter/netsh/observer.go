// Package netsh implements the Observer and Enforcer ports with the Windows
// netsh tool. Output parsing assumes English-language Windows.
package netsh

import (
	"context"
	"fmt"

	"golang-netenforce/internal/pkg/cmdoutput"
	"golang-netenforce/internal/port"
	"golang-netenforce/internal/types"
)

const netshCommand = "netsh"

// Observer reads the wireless association and IP configuration via netsh.
type Observer struct {
	iface  string
	runner port.CommandRunner
	parser cmdoutput.Parser
}

// Ensure Observer implements the Observer port
var _ port.Observer = (*Observer)(nil)

// NewObserver creates an observer for iface that parses netsh output with the default labels.
func NewObserver(iface string, runner port.CommandRunner) *Observer {
	return NewObserverWithParser(iface, runner, cmdoutput.NewLabelParser())
}

// NewObserverWithParser creates an observer with a custom parser, e.g. for
// localized label names.
func NewObserverWithParser(iface string, runner port.CommandRunner, parser cmdoutput.Parser) *Observer {
	return &Observer{
		iface:  iface,
		runner: runner,
		parser: parser,
	}
}

// NetworkIdentity returns the SSID that `netsh wlan show interfaces` lists
// for the observed interface. Other wireless interfaces are ignored.
func (o *Observer) NetworkIdentity(ctx context.Context) (types.NetworkIdentity, error) {
	out, err := o.runner.Run(ctx, netshCommand, "wlan", "show", "interfaces")
	if err != nil {
		return "", fmt.Errorf("%w: failed to query wireless interfaces: %w", types.ErrObservation, err)
	}

	identity, _ := cmdoutput.InterfaceIdentity(string(out), o.iface)
	return identity, nil
}

// AddressingState parses `netsh interface ip show config <interface>`.
func (o *Observer) AddressingState(ctx context.Context, interfaceName string) (types.ObservedConfig, error) {
	out, err := o.runner.Run(ctx, netshCommand, "interface", "ip", "show", "config", interfaceName)
	if err != nil {
		return types.ObservedConfig{}, fmt.Errorf("%w: failed to query IP configuration of %s: %w", types.ErrObservation, interfaceName, err)
	}

	return o.parser.Parse(string(out)), nil
}
