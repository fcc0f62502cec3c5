// Package core holds process-level plumbing shared by the hosts
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finisher restores a host display, e.g. tcell.Screen
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher
	crashOutput   io.Writer = os.Stderr
	crashExit               = os.Exit
)

// SetCrashTerminal registers the display restored before a crash report
// Pass nil to clear it after a normal shutdown
func SetCrashTerminal(f Finisher) {
	crashMu.Lock()
	crashTerminal = f
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that restores the display and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term := crashTerminal
	crashTerminal = nil
	out := crashOutput
	exit := crashExit
	crashMu.Unlock()

	// Restore terminal to sane state before printing
	if term != nil {
		term.Fini()
	}

	// Use \r\n in case the terminal is still in raw mode
	fmt.Fprintf(out, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(out, "Stack Trace:\r\n%s\r\n", debug.Stack())
	if f, ok := out.(*os.File); ok {
		f.Sync()
	}

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
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
