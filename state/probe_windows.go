//go:build windows

package state

import "os"

func processAlive(pid int) bool {
	// FindProcess only fails on Windows when the process does not exist.
	_, err := os.FindProcess(pid)
	return err == nil
}
