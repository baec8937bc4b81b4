//go:build windows

package supervisor

import (
	"os"
	"syscall"
)

func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// stopProcess has no SIGTERM on Windows; killing the worker loses the
// pipeline but still frees the toggle.
func stopProcess(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return errProcessGone
	}
	if err := p.Kill(); err != nil {
		return errProcessGone
	}
	return nil
}
