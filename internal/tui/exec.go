package tui

import (
	"io"

	"tcs/internal/menu"
)

// runItem adapts a RUN item to tea.ExecCommand. Bubble Tea releases the
// terminal, calls Run, and restores the UI once every command has exited.
type runItem struct {
	nav     *menu.Navigator
	item    *menu.Item
	streams Streams

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *runItem) SetStdin(in io.Reader) { r.stdin = in }
func (r *runItem) SetStdout(w io.Writer) { r.stdout = w }
func (r *runItem) SetStderr(w io.Writer) { r.stderr = w }

func (r *runItem) Run() error {
	if r.streams != nil {
		r.streams.SetStdio(r.stdin, r.stdout, r.stderr)
	}
	return r.nav.Activate(r.item)
}
