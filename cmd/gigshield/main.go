package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigshield/gigshield/internal/config"
	"github.com/gigshield/gigshield/internal/ui"
	"github.com/joho/godotenv"
)

func main() {
	// Local .env keeps the Firebase API key out of shell history
	_ = godotenv.Load()

	if len(os.Args) > 1 && os.Args[1] == "init" {
		if err := config.SaveExampleConfig(); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		dir, _ := config.GetConfigDir()
		fmt.Printf("Wrote example config to %s\n", dir)
		return
	}

	m := ui.NewModel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
