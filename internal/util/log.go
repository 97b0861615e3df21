package util

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ANSI color codes
const (
	Reset    = "\033[0m"
	Bold     = "\033[1m"
	Dim      = "\033[2m"
	Red      = "\033[31m"
	Green    = "\033[32m"
	Yellow   = "\033[33m"
	Cyan     = "\033[36m"
	BoldRed  = "\033[1;31m"
	BoldCyan = "\033[1;36m"
)

var (
	outMu  sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects the helpers in this file. Passing nil keeps the current writer.
// Color is only ever emitted when the writer is the process's own terminal.
func SetOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func writers() (io.Writer, io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	return stdout, stderr
}

// colorEnabled returns true if stderr is a TTY and NO_COLOR is not set.
var colorEnabled = sync.OnceValue(func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
})

// stdoutColorEnabled returns true if stdout is a TTY and NO_COLOR is not set.
var stdoutColorEnabled = sync.OnceValue(func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
})

// colorize wraps msg in ANSI color codes if color is enabled for stderr.
func colorize(c, msg string) string {
	_, errOut := writers()
	if errOut != os.Stderr || !colorEnabled() {
		return msg
	}
	return c + msg + Reset
}

// colorizeStdout wraps msg in ANSI color codes if color is enabled for stdout.
func colorizeStdout(c, msg string) string {
	out, _ := writers()
	if out != os.Stdout || !stdoutColorEnabled() {
		return msg
	}
	return c + msg + Reset
}

// Log prints an informational message to stderr with a cyan bold "==>" prefix.
func Log(msg string, args ...interface{}) {
	_, errOut := writers()
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(errOut, "%s %s\n", colorize(BoldCyan, "==>"), formatted)
}

// Success prints a success message to stderr with a green "==>" prefix.
func Success(msg string, args ...interface{}) {
	_, errOut := writers()
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(errOut, "%s %s\n", colorize(Green, "==>"), colorize(Green, formatted))
}

// Section prints a bold section header to stdout (e.g., "==> stream2raw").
func Section(msg string, args ...interface{}) {
	out, _ := writers()
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintln(out, colorizeStdout(Bold, "==> "+formatted))
}

// Error prints an error message to stderr with a bold red "ERROR:" prefix.
func Error(msg string, args ...interface{}) {
	_, errOut := writers()
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(errOut, "%s %s\n", colorize(BoldRed, "ERROR:"), colorize(BoldRed, formatted))
}

// Warn prints a warning message to stderr.
func Warn(msg string, args ...interface{}) {
	_, errOut := writers()
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(errOut, "%s %s\n", colorize(Yellow, "WARN:"), colorize(Yellow, formatted))
}

// Println prints a plain line to stdout.
func Println(msg string, args ...interface{}) {
	out, _ := writers()
	fmt.Fprintf(out, msg+"\n", args...)
}

// StatusTableRow represents a single row in a status table.
type StatusTableRow struct {
	Name   string
	Status string // Display text for status column
	Detail string // Extra info (PID, cmd)
	Ok     bool   // true = green, false = red
}

// StatusTable prints rows as an aligned, colored table.
func StatusTable(rows []StatusTableRow) {
	if len(rows) == 0 {
		return
	}
	out, _ := writers()

	// Compute column widths (using raw text length, not ANSI-colored length)
	nameW := 0
	for _, r := range rows {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
	}

	for _, r := range rows {
		c := Green
		if !r.Ok {
			c = Red
		}
		status := colorizeStdout(c, r.Status)
		detail := ""
		if r.Detail != "" {
			detail = colorizeStdout(Dim, r.Detail)
		}
		fmt.Fprintf(out, "  %-*s  %s  %s\n", nameW, r.Name, status, detail)
	}
}
