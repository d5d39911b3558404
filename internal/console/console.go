// Package console renders the agent's human-facing status lines. It is purely
// observational; nothing in the request path depends on its output.
package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

type Console struct {
	out io.Writer

	yellow *color.Color
	blue   *color.Color
	green  *color.Color
	red    *color.Color
}

// New returns a console writing to stdout.
func New() *Console {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter returns a console writing to the given writer, used by tests
// to capture output.
func NewWithWriter(out io.Writer) *Console {
	return &Console{
		out:    out,
		yellow: color.New(color.FgYellow),
		blue:   color.New(color.FgBlue),
		green:  color.New(color.FgGreen, color.Bold),
		red:    color.New(color.FgRed),
	}
}

func stamp() string {
	return time.Now().Format("15:04:05")
}

// SessionBanner prints the controller-assigned session id so the operator can
// hand it to whoever drives the controller.
func (c *Console) SessionBanner(sessionID string) {
	fmt.Fprintf(c.out, "\n%s\n", c.yellow.Sprint(sessionID))
}

// CommandRunning announces that a command has started.
func (c *Console) CommandRunning(command string) {
	fmt.Fprintf(c.out, "\r[%s] COMMAND: %s - %s", stamp(), command, c.blue.Sprint("Running"))
}

// CommandTick redraws the progress line while a command runs.
func (c *Console) CommandTick(dots string) {
	fmt.Fprintf(c.out, "\r[%s] COMMAND: Running%s", stamp(), c.blue.Sprint(dots))
}

// CommandDone announces a command that exited zero.
func (c *Console) CommandDone(command string) {
	fmt.Fprintf(c.out, "\r[%s] COMMAND: %s - %s\n", stamp(), command, c.green.Sprint("DONE"))
}

// CommandFailed announces a command that exited nonzero.
func (c *Console) CommandFailed(command string) {
	fmt.Fprintf(c.out, "\r[%s] COMMAND: %s - %s\n", stamp(), command, c.red.Sprint("Failed!"))
}
