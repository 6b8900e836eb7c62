package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"relinker/internal/adapters/docfile"
	"relinker/internal/adapters/tui"
	"relinker/internal/config"
)

func main() {
	documentFlag := flag.String("document", config.DocumentPath(), "path to the exported document")
	flag.Parse()

	document, err := docfile.Load(*documentFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(document, func() error {
		return document.Save(*documentFlag)
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
