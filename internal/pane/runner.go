// Package pane owns pane content: PTY-backed shell sessions keyed by
// layout.PaneID. The layout tree only moves pane identities between
// position slots; everything that reads, writes, or resizes a real
// terminal lives here.
package pane

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size is a pane's terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner spawns and controls a PTY. Tests swap in a mock so no real
// shell is needed.
type Runner interface {
	Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// PTYRunner implements Runner with github.com/creack/pty.
type PTYRunner struct{}

var _ Runner = (*PTYRunner)(nil)

// Start spawns cmd attached to a new PTY of the given size.
func (PTYRunner) Start(cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	ws := &pty.Winsize{Rows: size.Rows, Cols: size.Cols}
	return pty.StartWithSize(cmd, ws)
}

// Resize changes the PTY's dimensions. rwc must be the *os.File returned
// by Start; anything else is a no-op.
func (PTYRunner) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// DefaultShell returns the user's shell from $SHELL, falling back to sh.
func DefaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
