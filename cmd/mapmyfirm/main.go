package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"mapmyfirm/internal/adapters/editor"
	"mapmyfirm/internal/adapters/sqlite"
	"mapmyfirm/internal/adapters/tui"
	"mapmyfirm/internal/adapters/wordpress"
	"mapmyfirm/internal/config"
	"mapmyfirm/internal/logging"
	"mapmyfirm/internal/ports"
)

func main() {
	// The screen belongs to the TUI, so logs go to a file next to the database
	logPath := filepath.Join(filepath.Dir(config.DatabaseURL()), "mapmyfirm.log")
	logFile, err := openLog(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logging.New(logFile, logging.ParseLevel(config.LogLevel()), true)

	store, err := sqlite.Open(context.Background(), config.DatabaseURL(), log.Store())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app := tui.NewApp(store, tui.Options{
		Editor: editor.NewOpener(),
		Source: func(siteURL string) ports.PageSource {
			return wordpress.NewClient(siteURL, wordpress.WithLogger(log.Scan()))
		},
		Log: log.System(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openLog(path string) (*os.File, error) {
	if config.IsRemoteDatabase(config.DatabaseURL()) {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
