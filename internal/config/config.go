// Package config loads the tabmux keybinding table and settings from a
// TOML file in the user config dir. Invalid bindings are skipped and
// reported once at load time as warnings; they never crash the app or
// fail a rotation later.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"tabmux/internal/action"
)

// bindingEntry is one [[binding]] block as written in the file.
type bindingEntry struct {
	Key    string `toml:"key"`
	Mods   string `toml:"mods"`
	Action string `toml:"action"`
	Arg    string `toml:"arg"`
}

// Settings holds workspace-level options from [settings].
type Settings struct {
	Shell      string  `toml:"shell"`
	ResizeStep float64 `toml:"resize_step"`
	MaxTabs    int     `toml:"max_tabs"`
	Leader     string  `toml:"leader"`
}

type configFile struct {
	Binding  []bindingEntry `toml:"binding"`
	Settings Settings       `toml:"settings"`
}

// Binding is a validated keybinding: a key chord mapped to a parsed
// action. Chord is the normalized "mods+key" form (e.g. "ctrl+r").
type Binding struct {
	Chord  string
	Action action.Action
}

// Config is the result of a load: usable bindings plus per-entry
// warnings for the ones that were skipped.
type Config struct {
	Bindings []Binding
	Settings Settings
	Warnings []string
}

const defaultConfigTOML = `# tabmux keybindings. Keys fire after the leader (default ctrl+a).
# direction values are case-sensitive: Clockwise / CounterClockwise.

[[binding]]
key = "r"
action = "RotatePanes"
arg = "Clockwise"

[[binding]]
key = "r"
mods = "shift"
action = "RotatePanes"
arg = "CounterClockwise"

[[binding]]
key = "%"
action = "SplitPane"
arg = "horizontal"

[[binding]]
key = "\""
action = "SplitPane"
arg = "vertical"

[[binding]]
key = "x"
action = "ClosePane"

[[binding]]
key = "o"
action = "FocusNext"

[[binding]]
key = "O"
action = "FocusPrev"

[[binding]]
key = "c"
action = "NewTab"

[[binding]]
key = "&"
action = "CloseTab"

[[binding]]
key = "n"
action = "NextTab"

[[binding]]
key = "p"
action = "PrevTab"

[[binding]]
key = "h"
action = "ResizePane"
arg = "shrink-horizontal"

[[binding]]
key = "l"
action = "ResizePane"
arg = "grow-horizontal"

[[binding]]
key = "j"
action = "ResizePane"
arg = "grow-vertical"

[[binding]]
key = "k"
action = "ResizePane"
arg = "shrink-vertical"

[[binding]]
key = "q"
action = "Quit"

[settings]
shell = ""
resize_step = 0.05
max_tabs = 9
leader = "ctrl+a"
`

func defaultSettings() Settings {
	return Settings{
		Shell:      "",
		ResizeStep: 0.05,
		MaxTabs:    9,
		Leader:     "ctrl+a",
	}
}

// Dir returns the tabmux config directory under the user config dir.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "tabmux"), nil
}

// Path returns the full path to tabmux.toml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tabmux.toml"), nil
}

// Load reads the config at path, creating it with defaults when missing.
// An empty path uses the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr != nil {
			return nil, fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultConfigTOML), 0644); wErr != nil {
			return nil, fmt.Errorf("write default config: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes into a Config. A malformed file is an error;
// individually invalid bindings are collected as warnings and skipped.
func Parse(data []byte) (*Config, error) {
	var cf configFile
	if err := toml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse tabmux.toml: %w", err)
	}

	cfg := &Config{Settings: normalizeSettings(cf.Settings)}
	seen := make(map[string]bool)
	for i, b := range cf.Binding {
		if b.Key == "" {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("binding[%d]: key is required", i))
			continue
		}
		act, err := action.Parse(b.Action, b.Arg)
		if err != nil {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("binding[%d] %q: %v", i, b.Key, err))
			continue
		}
		chord := Chord(b.Key, b.Mods)
		if seen[chord] {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("binding[%d]: duplicate chord %q", i, chord))
			continue
		}
		seen[chord] = true
		cfg.Bindings = append(cfg.Bindings, Binding{Chord: chord, Action: act})
	}
	return cfg, nil
}

// Chord normalizes a key plus modifier set to the "mods+key" form that
// Bubble Tea key messages stringify to. A shift modifier on a letter is
// folded into the rune itself.
func Chord(key, mods string) string {
	key = strings.TrimSpace(key)
	var parts []string
	for _, m := range strings.Split(mods, "+") {
		m = strings.ToLower(strings.TrimSpace(m))
		switch m {
		case "":
			continue
		case "shift":
			if len(key) == 1 {
				key = strings.ToUpper(key)
				continue
			}
			parts = append(parts, m)
		default:
			parts = append(parts, m)
		}
	}
	if len(parts) == 0 {
		return key
	}
	return strings.Join(parts, "+") + "+" + key
}

func normalizeSettings(s Settings) Settings {
	out := defaultSettings()
	if s.Shell != "" {
		out.Shell = s.Shell
	}
	if s.ResizeStep > 0 && s.ResizeStep <= 0.5 {
		out.ResizeStep = s.ResizeStep
	}
	if s.MaxTabs >= 1 && s.MaxTabs <= 99 {
		out.MaxTabs = s.MaxTabs
	}
	if s.Leader != "" {
		out.Leader = s.Leader
	}
	return out
}
