package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tabmux/internal/config"
	"tabmux/internal/layout"
	"tabmux/internal/mux"
	"tabmux/internal/pane"
	"tabmux/internal/telemetry"
	"tabmux/internal/ui"
)

var (
	configPath string
	layoutPath string
	logPath    string
)

var rootCmd = &cobra.Command{
	Use:   "tabmux",
	Short: "Terminal workspace with tabs of split shell panes",
	Long: `tabmux runs a set of shell panes arranged in a split tree, grouped
into tabs. Panes are driven through a prefix key (ctrl+a by default):
split, close, rotate, resize, and switch tabs without leaving the
keyboard.

The layout of the active tab is saved on exit and restored on the next
run when --layout points at the same file.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	rootCmd.Flags().StringVar(&layoutPath, "layout", "", "Layout file to restore and save (default: alongside config)")
	rootCmd.Flags().StringVar(&logPath, "log-file", "", "Append debug logs to this file")
}

func run(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	for _, warn := range cfg.Warnings {
		fmt.Fprintf(os.Stderr, "tabmux: config: %s\n", warn)
	}

	ctx := context.Background()
	tracer, err := telemetry.New(ctx)
	if err != nil {
		logger.Printf("telemetry disabled: %v", err)
	}
	if tracer != nil {
		defer tracer.Shutdown(ctx)
	}

	ws := ui.NewWorkspace(cfg.Settings, pane.PTYRunner{}, tracer, logger)
	defer ws.Shutdown()

	var tmuxSession string
	if mux.Inside() {
		tmuxSession = mux.SessionName()
	}

	model := ui.NewAppModel(ws, ui.NewRegistry(cfg.Bindings), tmuxSession)
	p := tea.NewProgram(model, tea.WithAltScreen())
	// Panes capture the notify hook at spawn, so it must be installed
	// before the first tab is created.
	ws.SetNotify(func() {
		p.Send(ui.PaneOutputMsg{})
	})

	savePath, err := resolveLayoutPath()
	if err != nil {
		return err
	}
	if err := restore(ws, savePath, logger); err != nil {
		return err
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}

	if tab := ws.ActiveTab(); tab != nil && !tab.Tree.Empty() {
		if err := tab.Tree.Save(savePath); err != nil {
			logger.Printf("saving layout: %v", err)
		}
	}
	return nil
}

// restore seeds the workspace from a saved layout when one exists,
// falling back to a fresh single-pane tab.
func restore(ws *ui.Workspace, path string, logger *log.Logger) error {
	if path != "" {
		tree, err := layout.Load(path)
		switch {
		case err == nil:
			adoptErr := ws.AdoptTree(tree)
			if adoptErr == nil {
				return nil
			}
			logger.Printf("restoring layout: %v", adoptErr)
			// AdoptTree may have spawned some shells before failing;
			// reap them before starting fresh.
			ws.Shutdown()
		case !errors.Is(err, os.ErrNotExist):
			logger.Printf("loading layout %s: %v", path, err)
		}
	}
	return ws.Bootstrap()
}

func resolveLayoutPath() (string, error) {
	if layoutPath != "" {
		return layoutPath, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving layout path: %w", err)
	}
	return filepath.Join(dir, "layout.json"), nil
}

func openLogger() (*log.Logger, func(), error) {
	if logPath == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), func() { f.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
