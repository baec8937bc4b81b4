//go:build !darwin && !linux

package notify

// Send is a no-op on platforms without a wired notification command.
func Send(title, message string) {}
