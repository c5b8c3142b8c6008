package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"
)

var (
	resetHook atomic.Pointer[func()]

	// Replaced in tests
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
)

// SetResetHook installs the terminal restore routine run before crash output
// The sandbox passes its screen Fini so the report lands on a sane terminal
func SetResetHook(fn func()) {
	resetHook.Store(&fn)
}

// HandleCrash restores the terminal, reports r with a stack trace and exits
// A nil r is ignored so it can be called with recover() directly
func HandleCrash(r any) {
	if r == nil {
		return
	}
	if hook := resetHook.Load(); hook != nil && *hook != nil {
		(*hook)()
	}

	// \r\n keeps lines aligned if raw mode survived the reset
	fmt.Fprintf(crashOut, "\r\n\x1b[31mpanic: %v\x1b[0m\r\n%s\r\n", r, debug.Stack())
	if f, ok := crashOut.(*os.File); ok {
		_ = f.Sync()
	}
	crashExit(1)
}

// Go starts fn on a goroutine whose panics go through HandleCrash
func Go(fn func()) {
	go func() {
		defer func() {
			HandleCrash(recover())
		}()
		fn()
	}()
}
