// Package shutdown wires OS termination signals to the worker loop.
package shutdown

import "os"

// Subscribe registers for termination signals and returns the channel
// they arrive on. Call it before doing anything slow: a signal delivered
// after Subscribe returns is buffered, a signal delivered before it is
// the process default (termination).
func Subscribe() chan os.Signal {
	ch := make(chan os.Signal, 1)
	Notify(ch)
	return ch
}
