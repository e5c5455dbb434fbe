// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

//go:generate mockgen -source=infrastructure.go -destination=../mock/mock_infrastructure.go -package=mock

import (
	"context"
)

// CommandRunner is a port for invoking OS command-line tools.
type CommandRunner interface {
	// Run executes name with args and returns its standard output.
	// A non-zero exit status is returned as an error.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// FileManager is a port for file system operations.
// This interface abstracts file read/write operations.
type FileManager interface {
	// ReadFile reads the contents of a file
	ReadFile(filename string) ([]byte, error)

	// WriteFile writes data to a file with specified permissions
	WriteFile(filename string, data []byte, perm int) error
}
