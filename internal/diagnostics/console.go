package diagnostics

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// ANSI foreground codes closest to the CSS severity colours.
var severityANSI = [...]string{
	Error:   "\x1b[31m",
	Warning: "\x1b[33m",
	Info:    "\x1b[34m",
}

const ansiReset = "\x1b[0m"

// Console writes "Label: message" lines to a writer, coloured when the
// writer is a terminal.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewConsole creates a Console writing to w. Colour is enabled only when w
// is an *os.File attached to a terminal.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, color: IsTerminal(w)}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) Record(_ context.Context, severity Severity, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.color && severity >= Error && severity <= Info {
		_, _ = fmt.Fprintf(c.w, "%s%s: %s%s\n", severityANSI[severity], severity.Label(), message, ansiReset)
		return
	}
	_, _ = fmt.Fprintf(c.w, "%s: %s\n", severity.Label(), message)
}
