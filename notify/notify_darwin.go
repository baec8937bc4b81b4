//go:build darwin

package notify

import (
	"os/exec"
	"strings"
)

// Send posts a desktop notification via osascript. Notifications are
// non-critical, failures are swallowed.
func Send(title, message string) {
	esc := func(s string) string {
		return strings.ReplaceAll(s, `"`, `\"`)
	}
	script := `display notification "` + esc(message) + `" with title "` + esc(title) + `"`
	_ = exec.Command("osascript", "-e", script).Run()
}
