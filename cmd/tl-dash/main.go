package main

import (
	"flag"
	"log"

	"TrafficLens/internal/config"
	"TrafficLens/internal/store"
	"TrafficLens/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	dataFile   = flag.String("f", "", "CSV `file` of packet records (overrides config)")
	configPath = flag.String("config", "configs/config.yaml", "path to config file")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	path := cfg.Dataset.Path
	if *dataFile != "" {
		path = *dataFile
	}

	table, err := store.Load(path)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	p := tea.NewProgram(ui.New(table, cfg.Display.RowLimit, cfg.Display.TopN))
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
