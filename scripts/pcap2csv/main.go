package main

import (
	"flag"
	"log"

	"TrafficLens/internal/core/model"
	"TrafficLens/internal/store"
	"TrafficLens/pkg/pcap"
)

func main() {
	inputFile := flag.String("r", "", "pcap `file` to convert")
	outputFile := flag.String("o", "traffic.csv", "Output CSV file path")
	flag.Parse()

	if *inputFile == "" {
		log.Fatal("No input file given, use -r <capture.pcap>")
	}

	records, err := pcap.ReadRecords(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read capture: %v", err)
	}
	log.Printf("Converted %d packets from %s", len(records), *inputFile)

	if err := store.Save(*outputFile, &model.Table{Records: records}); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}
	log.Printf("Wrote %s.", *outputFile)
}
