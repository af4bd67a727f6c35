package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/rgehrsitz/wealthtax/internal/calculation"
	"github.com/rgehrsitz/wealthtax/internal/config"
	"github.com/rgehrsitz/wealthtax/internal/tui"
)

func main() {
	settings, err := config.LoadSettings(os.Getenv("WEALTHTAX_SETTINGS"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Data directory from arguments, falling back to settings
	dataDir := settings.DataDir
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}
	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		fmt.Printf("Error: data directory not found: %s\n", dataDir)
		fmt.Println("Usage: wealthtax-tui [data-dir]")
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere
	logrus.SetOutput(io.Discard)
	if path := os.Getenv("WEALTHTAX_TUI_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			defer f.Close()
			logrus.SetOutput(f)
			logrus.SetLevel(logrus.DebugLevel)
		}
	}

	engine := calculation.NewEngine()
	engine.SetLogger(logrus.WithField("module", "engine"))

	p := tea.NewProgram(
		tui.NewModel(dataDir, engine, settings.ReformParameters()),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
