//go:build !windows

package state

import (
	"errors"
	"syscall"
)

// processAlive probes the pid with signal 0: delivery is never attempted,
// only existence is checked. EPERM means the process exists but belongs to
// another user, so conservatively alive.
func processAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
