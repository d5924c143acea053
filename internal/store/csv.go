package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"TrafficLens/internal/core/model"
)

// timestampLayouts are accepted on load. Datasets written by this package
// use the first; RFC 3339 covers captures converted by other tools.
var timestampLayouts = []string{
	model.TimestampLayout,
	time.RFC3339,
}

// Load reads a packet record table from a CSV file. The header must name
// every canonical column; column order is free. A malformed file returns
// an error and no partial table.
func Load(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return table, nil
}

// Read parses a record table from CSV content.
func Read(r io.Reader) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range model.Columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}

	var records []*model.PacketRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line++

		rec, err := parseRecord(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return &model.Table{Records: records}, nil
}

func parseRecord(row []string, index map[string]int) (*model.PacketRecord, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	ts, err := parseTimestamp(field(model.ColumnTimestamp))
	if err != nil {
		return nil, err
	}

	length, err := strconv.Atoi(field(model.ColumnLength))
	if err != nil {
		return nil, fmt.Errorf("invalid length %q", field(model.ColumnLength))
	}
	if length < 0 {
		return nil, fmt.Errorf("negative length %d", length)
	}

	rec := &model.PacketRecord{
		Timestamp: ts,
		SourceIP:  field(model.ColumnSourceIP),
		DestIP:    field(model.ColumnDestIP),
		Protocol:  field(model.ColumnProtocol),
		Length:    length,
	}

	if raw := field(model.ColumnPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 0 || port > 65535 {
			return nil, fmt.Errorf("invalid port %q", raw)
		}
		rec.Port = &port
	}

	return rec, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

// Save writes a record table as CSV with the canonical header. Both the
// mock generator and the pcap converter produce datasets through it.
func Save(path string, table *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	if err := Write(f, table); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}

// Write serializes a record table as CSV content.
func Write(w io.Writer, table *model.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(model.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, rec := range table.Records {
		port := ""
		if rec.Port != nil {
			port = strconv.Itoa(*rec.Port)
		}
		row := []string{
			rec.Timestamp.Format(model.TimestampLayout),
			rec.SourceIP,
			rec.DestIP,
			rec.Protocol,
			strconv.Itoa(rec.Length),
			port,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
