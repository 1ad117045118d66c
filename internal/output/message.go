package output

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// bellPrefix returns the terminal bell character ("\a") when w is a
// TTY, the empty string otherwise, per spec.md §6: "a terminal bell
// character (\a) prefixes diagnostics iff stderr is a TTY."
func bellPrefix(w *os.File) string {
	if term.IsTerminal(int(w.Fd())) { //nolint:gosec // G115: Fd() is a small fd number
		return "\a"
	}
	return ""
}

// Warn prints a warning message to stderr as "WARNING: <msg>.",
// matching ssss.c's warning() (always writes to stderr, never aborts)
// and spec.md §6/§7's literal diagnostic format, bell-prefixed when
// stderr is a TTY.
func Warn(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "%sWARNING: %s.\n", bellPrefix(os.Stderr), msg)
}

// Warnf prints a formatted warning message to stderr.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Fatal prints a fatal error message to stderr as "FATAL: <msg>.",
// per spec.md §6/§7, bell-prefixed when stderr is a TTY.
func Fatal(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "%sFATAL: %s.\n", bellPrefix(os.Stderr), msg)
}

// Info prints an informational message to stdout.
func Info(msg string) {
	_, _ = fmt.Fprintln(os.Stdout, msg)
}

// Infof prints a formatted informational message to stdout.
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// Success prints a success message to stdout.
func Success(msg string) {
	_, _ = fmt.Fprintln(os.Stdout, msg)
}

// Successf prints a formatted success message to stdout.
func Successf(format string, args ...any) {
	Success(fmt.Sprintf(format, args...))
}
