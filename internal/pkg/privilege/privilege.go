// Package privilege checks that the process may change network settings.
package privilege

import (
	"fmt"

	"golang-netenforce/internal/types"
)

// Check returns an error wrapping types.ErrInsufficientPrivilege unless the
// process runs elevated (Administrator on Windows, root elsewhere).
func Check() error {
	if !isElevated() {
		return fmt.Errorf("%w: run as %s", types.ErrInsufficientPrivilege, requiredRole)
	}
	return nil
}
