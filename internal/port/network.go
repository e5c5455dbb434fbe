// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

//go:generate mockgen -source=network.go -destination=../mock/mock_network.go -package=mock

import (
	"context"
	"time"

	"golang-netenforce/internal/types"
)

// Observer is the read-only port onto the OS network layer.
// Implementations never change interface state.
type Observer interface {
	// NetworkIdentity returns the SSID the interface is associated with.
	// A disconnected interface yields an empty identity and a nil error;
	// a failed query yields an error wrapping types.ErrObservation.
	NetworkIdentity(ctx context.Context) (types.NetworkIdentity, error)

	// AddressingState returns whether automatic addressing is enabled on the
	// interface and which IPv4 address it currently holds.
	AddressingState(ctx context.Context, interfaceName string) (types.ObservedConfig, error)
}

// Enforcer is the port that applies addressing configuration to an interface.
// Both operations are idempotent and do not roll back partial application.
type Enforcer interface {
	// EnforceAutomatic switches the interface to automatic addressing and automatic resolver.
	EnforceAutomatic(ctx context.Context, interfaceName string) error

	// EnforceStatic sets address, mask and gateway, then the resolver.
	EnforceStatic(ctx context.Context, interfaceName string, desired types.DesiredConfig) error
}

// Ticker produces one event per poll interval.
type Ticker interface {
	C() <-chan time.Time

	// Reset restarts the interval from now and discards a pending event.
	Reset()

	Stop()
}
