package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// crashCleanup holds the cleanup hook run before a crash report is printed
var crashCleanup atomic.Pointer[func()]

// SetCrashCleanup registers a hook that restores the terminal (or any other owned resource) on crash
// Keeps core independent of the presentation layer
func SetCrashCleanup(fn func()) {
	if fn == nil {
		crashCleanup.Store(nil)
		return
	}
	crashCleanup.Store(&fn)
}

// HandleCrash is the unified panic handler that runs the cleanup hook and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := crashCleanup.Load(); fn != nil {
		(*fn)()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Recover must be deferred directly: defer core.Recover()
func Recover() {
	if r := recover(); r != nil {
		HandleCrash(r)
	}
}

// Guard wraps fn with crash recovery, for goroutines started by errgroup
func Guard(fn func() error) func() error {
	return func() error {
		defer Recover()
		return fn()
	}
}
