//go:build !windows

package privilege

import "os"

const requiredRole = "root"

func isElevated() bool {
	return os.Geteuid() == 0
}
