// Package safego runs goroutines with panic recovery so a crashing watcher or
// reader never takes the hosting application down.
package safego

import (
	"runtime/debug"

	"github.com/tuikit/scrollview/internal/logging"
)

// Run executes fn and converts panics into logged errors.
// This does not recover from runtime-fatal errors (e.g., concurrent map writes).
func Run(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			label := name
			if label == "" {
				label = "goroutine"
			}
			logging.Error("panic in %s: %v\n%s", label, r, debug.Stack())
		}
	}()
	fn()
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}
