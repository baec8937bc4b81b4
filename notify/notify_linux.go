//go:build linux

package notify

import "os/exec"

// Send posts a desktop notification via notify-send. Notifications are
// non-critical, failures are swallowed.
func Send(title, message string) {
	_ = exec.Command("notify-send", title, message).Run()
}
