// Package logger provides colored, levelled console output.
package logger

import (
	"os"

	"github.com/fatih/color"
)

// Info prints progress messages in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn prints recoverable problems in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

var errorf = color.New(color.FgRed).FprintfFunc()

// Debug prints cyan diagnostics once enabled through Init; a no-op otherwise.
var Debug = func(format string, a ...any) {}

// Error prints fatal problems in red on stderr.
func Error(format string, a ...any) {
	errorf(os.Stderr, format, a...)
}

// Init switches debug output on or off.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
		return
	}
	Debug = func(format string, a ...any) {}
}
