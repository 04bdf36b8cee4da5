// Package mux detects when tabmux runs nested inside tmux and surfaces
// the enclosing session's name for the status bar. Read-only: tabmux
// never drives tmux panes.
package mux

import (
	"os"
	"strings"

	"github.com/GianlucaP106/gotmux/gotmux"
)

// Inside reports whether the process runs inside a tmux client.
func Inside() bool {
	return os.Getenv("TMUX") != ""
}

// sessionIDFromEnv extracts the session ID from $TMUX, whose format is
// "socketpath,serverpid,sessionid". Returns "" when unparseable.
func sessionIDFromEnv(env string) string {
	parts := strings.Split(env, ",")
	if len(parts) != 3 || parts[2] == "" {
		return ""
	}
	return "$" + parts[2]
}

// SessionName returns the name of the enclosing tmux session, or "" when
// not nested or tmux cannot be queried. Failures are silent; this only
// feeds a status-bar hint.
func SessionName() string {
	if !Inside() {
		return ""
	}
	tmux, err := gotmux.DefaultTmux()
	if err != nil {
		return ""
	}
	sessions, err := tmux.ListSessions()
	if err != nil || len(sessions) == 0 {
		return ""
	}
	if want := sessionIDFromEnv(os.Getenv("TMUX")); want != "" {
		for _, s := range sessions {
			if s.Id == want {
				return s.Name
			}
		}
	}
	return sessions[0].Name
}
