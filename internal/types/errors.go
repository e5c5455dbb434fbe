package types

import "errors"

var (
	// ErrObservation marks a query of the OS network layer that returned no usable data.
	ErrObservation = errors.New("observation failed")

	// ErrEnforcement marks a failed attempt to change the interface configuration.
	ErrEnforcement = errors.New("enforcement failed")

	// ErrInsufficientPrivilege is returned when the process may not change network settings.
	ErrInsufficientPrivilege = errors.New("insufficient privilege to change network settings")
)
