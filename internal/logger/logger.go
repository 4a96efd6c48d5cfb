package logger

import (
	"os"

	"github.com/fatih/color"    // Import the fatih/color package for colored console output
	"github.com/mattn/go-isatty" // Terminal detection, so piped output stays free of escape codes
)

// Define colorized printing functions for different log levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level.
// All of them write to stderr: stdout is reserved for reports, which users diff and redirect.

// Info logs informational messages in green color.
var Info = newPrinter(color.FgGreen)

// Warn logs warning messages in bright magenta color.
var Warn = newPrinter(color.FgHiMagenta)

// Error logs error messages in red color.
var Error = newPrinter(color.FgRed)

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is assigned dynamically during Init based on the verbose flag.
var Debug = func(format string, a ...any) {}

// newPrinter builds a Printf-style function bound to stderr in the given color.
func newPrinter(attr color.Attribute) func(format string, a ...any) {
	c := color.New(attr)
	return func(format string, a ...any) {
		_, _ = c.Fprintf(os.Stderr, format, a...)
	}
}

// Init initializes the logger package.
// Parameters:
// - enableDebug: turn Debug messages on (cyan) or off (no-op).
// - noColor: force plain output. Color is also dropped when stderr is not a terminal.
func Init(enableDebug, noColor bool) {
	color.NoColor = noColor || !isatty.IsTerminal(os.Stderr.Fd())

	if enableDebug {
		Debug = newPrinter(color.FgCyan)
	} else {
		Debug = func(format string, a ...any) {}
	}
}
