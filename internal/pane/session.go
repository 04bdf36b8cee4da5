package pane

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"tabmux/internal/layout"
)

// scrollbackLines bounds how much pane output is retained for display.
const scrollbackLines = 500

// Session is one live pane: a shell running in a PTY plus a bounded
// scrollback tail. The reader goroutine is the only producer of
// scrollback; all accessors lock.
type Session struct {
	ID    layout.PaneID
	Title string

	runner Runner
	rwc    io.ReadWriteCloser

	mu      sync.Mutex
	lines   []string
	partial string
	exited  bool

	// onOutput is invoked (outside the lock) after new output arrives so
	// the UI can schedule a redraw.
	onOutput func()
}

// StartSession spawns shellCmd in a PTY and begins pumping its output.
// An empty shellCmd uses the user's default shell.
func StartSession(id layout.PaneID, shellCmd string, size Size, runner Runner, onOutput func()) (*Session, error) {
	if shellCmd == "" {
		shellCmd = DefaultShell()
	}
	cmd := exec.Command(shellCmd)
	cmd.Env = append(cmd.Environ(), "TABMUX_PANE="+string(id))

	rwc, err := runner.Start(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("start pane shell: %w", err)
	}
	s := &Session{
		ID:       id,
		Title:    shellCmd,
		runner:   runner,
		rwc:      rwc,
		onOutput: onOutput,
	}
	go s.readLoop()
	return s, nil
}

// readLoop pumps PTY output into the scrollback until the shell exits.
func (s *Session) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.rwc.Read(buf)
		if n > 0 {
			s.append(string(buf[:n]))
			if s.onOutput != nil {
				s.onOutput()
			}
		}
		if err != nil {
			s.mu.Lock()
			s.exited = true
			s.mu.Unlock()
			if s.onOutput != nil {
				s.onOutput()
			}
			return
		}
	}
}

// append folds a chunk of raw output into the line buffer, keeping at
// most scrollbackLines complete lines plus one partial line.
func (s *Session) append(chunk string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chunk = strings.ReplaceAll(chunk, "\r\n", "\n")
	chunk = strings.ReplaceAll(chunk, "\r", "\n")
	text := s.partial + chunk
	parts := strings.Split(text, "\n")
	s.partial = parts[len(parts)-1]
	s.lines = append(s.lines, parts[:len(parts)-1]...)
	if over := len(s.lines) - scrollbackLines; over > 0 {
		s.lines = s.lines[over:]
	}
}

// Tail returns up to n most recent lines of output, including the
// trailing partial line when present.
func (s *Session) Tail(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.lines
	if s.partial != "" {
		lines = append(append([]string{}, lines...), s.partial)
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return append([]string{}, lines...)
}

// Write sends input to the shell.
func (s *Session) Write(p []byte) error {
	_, err := s.rwc.Write(p)
	return err
}

// Resize adjusts the PTY to the pane's new cell bounds.
func (s *Session) Resize(size Size) error {
	return s.runner.Resize(s.rwc, size)
}

// Exited reports whether the shell has terminated.
func (s *Session) Exited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited
}

// Close tears down the PTY; the reader goroutine unblocks with an error
// and marks the session exited.
func (s *Session) Close() error {
	return s.rwc.Close()
}
