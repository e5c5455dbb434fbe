//go:build windows

package privilege

import "golang.org/x/sys/windows"

const requiredRole = "Administrator"

func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
