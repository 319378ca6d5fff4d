package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// CleanupFunc restores the terminal before crash output is printed
type CleanupFunc func()

var cleanup CleanupFunc

// SetCrashCleanup registers a function run before a crash is reported,
// typically the screen Fini. Last registration wins
func SetCrashCleanup(fn CleanupFunc) {
	cleanup = fn
}

// HandleCrash is the unified panic handler: restore the terminal,
// print the stack trace, exit
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if cleanup != nil {
		cleanup()
	}

	fmt.Fprintf(os.Stderr, "\r\nCRASH DETECTED: %v\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
