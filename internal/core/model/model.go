package model

import "time"

// Canonical column names. They double as the CSV header and as the JSON
// keys on the wire, so the three front-ends and the dataset agree on
// spelling.
const (
	ColumnTimestamp = "Timestamp"
	ColumnSourceIP  = "Source IP"
	ColumnDestIP    = "Dest IP"
	ColumnProtocol  = "Protocol"
	ColumnLength    = "Length"
	ColumnPort      = "Port"
)

// Columns lists the canonical columns in table order.
var Columns = []string{
	ColumnTimestamp,
	ColumnSourceIP,
	ColumnDestIP,
	ColumnProtocol,
	ColumnLength,
	ColumnPort,
}

// TimestampLayout is the wire/display format for record timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// PacketRecord is a single pre-recorded packet row. Records are immutable
// once loaded; derived views reference them, they never copy fields.
type PacketRecord struct {
	Timestamp time.Time
	SourceIP  string
	DestIP    string
	Protocol  string
	Length    int
	Port      *int // nil when the source column was empty
}

// Table is the full ordered set of loaded packet records. It is built once
// by a loader and replaced wholesale on the next load, never patched.
type Table struct {
	Records []*PacketRecord
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// View returns the table's records as a view over the full table.
func (t *Table) View() []*PacketRecord {
	if t == nil {
		return nil
	}
	return t.Records
}
