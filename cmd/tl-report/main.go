package main

import (
	"flag"
	"log"
	"os"

	"TrafficLens/internal/config"
	"TrafficLens/internal/engine"
	"TrafficLens/internal/report"
	"TrafficLens/internal/store"
)

var (
	dataFile   = flag.String("f", "", "CSV `file` of packet records (overrides config)")
	configPath = flag.String("config", "configs/config.yaml", "path to config file")
	protocol   = flag.String("protocol", "", "filter: exact protocol match")
	sourceIP   = flag.String("src", "", "filter: source address substring")
	destIP     = flag.String("dst", "", "filter: destination address substring")
	sortBy     = flag.String("sort", "", "sort column (e.g. \"Length\")")
	descending = flag.Bool("desc", false, "sort descending")
	rows       = flag.Int("rows", 0, "record rows to print (0 uses the configured limit)")
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
	log.Printf("Loaded %d packet records from %s", table.Len(), path)

	view := engine.ApplyFilters(table.View(), engine.FilterSpec{
		Protocol:       *protocol,
		SourceContains: *sourceIP,
		DestContains:   *destIP,
	})

	if *sortBy != "" {
		view, err = engine.ApplySort(view, engine.SortSpec{
			Column:    *sortBy,
			Ascending: !*descending,
		})
		if err != nil {
			log.Fatalf("Cannot sort: %v", err)
		}
	}

	rowLimit := cfg.Display.RowLimit
	if *rows > 0 {
		rowLimit = *rows
	}

	rp := report.Report{RowLimit: rowLimit, TopN: cfg.Display.TopN}
	if err := rp.Render(os.Stdout, view); err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
}
