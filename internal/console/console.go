// Package console handles reporover's user-facing terminal output.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/mgutz/ansi"
)

// Output writes human-readable status lines with optional color support.
// Results go to stdout; diagnostics go to stderr. It is safe for
// concurrent use by the bulk commands' worker goroutines.
type Output struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer

	cyan   func(string) string
	green  func(string) string
	yellow func(string) string
	red    func(string) string
}

// NewOutput creates a new Output with optional color support.
func NewOutput(stdout, stderr io.Writer, colorize bool) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout: stdout,
		stderr: stderr,
		cyan:   color("cyan"),
		green:  color("green+b"),
		yellow: color("yellow"),
		red:    color("red+b"),
	}
}

// Resultf writes a formatted result line to stdout.
func (o *Output) Resultf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stdout, format+"\n", args...)
}

// Checkf writes a success line to stdout.
func (o *Output) Checkf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stdout, o.green("✓ ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Errorf writes a formatted error message to stderr.
func (o *Output) Errorf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.red("Error: ")+format+"\n", args...)
}

// Progressf writes a counter-prefixed progress line to stderr.
func (o *Output) Progressf(completed, total int, format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	prefix := o.cyan(fmt.Sprintf("[%d/%d] ", completed, total))
	fmt.Fprintf(o.stderr, prefix+format+"\n", args...)
}
