//go:build !windows

package supervisor

import (
	"errors"
	"syscall"
)

// detachAttr starts the worker in its own session so it survives the
// terminal that launched it.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// stopProcess asks the worker to finish. ESRCH maps to errProcessGone
// so the caller can reclaim a stale marker.
func stopProcess(pid int) error {
	err := syscall.Kill(pid, syscall.SIGTERM)
	if errors.Is(err, syscall.ESRCH) {
		return errProcessGone
	}
	return err
}
