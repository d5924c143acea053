package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"time"

	"TrafficLens/internal/core/model"
	"TrafficLens/internal/store"
)

var protocols = []string{"TCP", "UDP", "ICMP", "HTTP", "DNS", "FTP", "SSH", "HTTPS"}

var fixedPorts = map[string]int{
	"HTTP":  80,
	"HTTPS": 443,
	"SSH":   22,
	"DNS":   53,
	"FTP":   21,
}

var commonPorts = []int{80, 443, 21, 22, 23, 53, 110, 143, 3389}

func main() {
	outputFile := flag.String("o", "mock_traffic.csv", "Output CSV file path")
	recordCount := flag.Int("c", 5000, "Number of records to generate")
	force := flag.Bool("force", false, "Overwrite an existing file")
	flag.Parse()

	if !*force {
		if _, err := os.Stat(*outputFile); err == nil {
			log.Printf("'%s' already exists. Skipping creation.", *outputFile)
			return
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ips := mockAddresses(rng)

	log.Printf("Generating %d records into %s...", *recordCount, *outputFile)

	now := time.Now().Truncate(time.Second)
	records := make([]*model.PacketRecord, 0, *recordCount)
	for i := 0; i < *recordCount; i++ {
		// Traffic spread over the last 7 days
		ts := now.Add(-time.Duration(rng.Intn(3600*24*7)) * time.Second)
		protocol := protocols[rng.Intn(len(protocols))]
		port := portFor(rng, protocol)

		records = append(records, &model.PacketRecord{
			Timestamp: ts,
			SourceIP:  ips[rng.Intn(len(ips))],
			DestIP:    ips[rng.Intn(len(ips))],
			Protocol:  protocol,
			Length:    rng.Intn(1500-64) + 64,
			Port:      &port,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	if err := store.Save(*outputFile, &model.Table{Records: records}); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}
	log.Printf("Successfully created '%s'.", *outputFile)
}

// mockAddresses mixes internal ranges with random external addresses.
func mockAddresses(rng *rand.Rand) []string {
	var ips []string
	for i := 0; i < 30; i++ {
		ips = append(ips, fmt.Sprintf("192.168.1.%d", rng.Intn(253)+2))
	}
	for i := 0; i < 15; i++ {
		ips = append(ips, fmt.Sprintf("10.0.0.%d", rng.Intn(253)+2))
	}
	for i := 0; i < 15; i++ {
		ips = append(ips, fmt.Sprintf("172.16.%d.%d", rng.Intn(31)+1, rng.Intn(253)+2))
	}
	for i := 0; i < 70; i++ {
		ips = append(ips, fmt.Sprintf("%d.%d.%d.%d",
			rng.Intn(254)+1, rng.Intn(254)+1, rng.Intn(254)+1, rng.Intn(254)+1))
	}
	return ips
}

func portFor(rng *rand.Rand, protocol string) int {
	if port, ok := fixedPorts[protocol]; ok {
		return port
	}
	if protocol == "TCP" || protocol == "UDP" {
		if rng.Intn(len(commonPorts)+1) < len(commonPorts) {
			return commonPorts[rng.Intn(len(commonPorts))]
		}
		return rng.Intn(65535-1024) + 1024
	}
	return rng.Intn(65535) + 1
}
