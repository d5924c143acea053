package engine

import (
	"encoding/json"
	"testing"
	"time"

	"TrafficLens/internal/core/model"
)

func TestComputeStats_EmptyView(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.TotalPackets != 0 {
		t.Errorf("TotalPackets = %d, want 0", stats.TotalPackets)
	}
	if stats.TotalBytes != 0 {
		t.Errorf("TotalBytes = %d, want 0", stats.TotalBytes)
	}
	if stats.AverageSize != 0 {
		t.Errorf("AverageSize = %f, want 0", stats.AverageSize)
	}
	if stats.UniqueProtocols != 0 {
		t.Errorf("UniqueProtocols = %d, want 0", stats.UniqueProtocols)
	}
	if got := stats.TimeRange(); got != TimeRangeSentinel {
		t.Errorf("TimeRange() = %q, want %q", got, TimeRangeSentinel)
	}
}

func TestComputeStats_FilteredScenario(t *testing.T) {
	records := testRecords()
	view := ApplyFilters(records, FilterSpec{Protocol: "TCP"})

	stats := ComputeStats(view)
	if stats.TotalPackets != 2 {
		t.Errorf("TotalPackets = %d, want 2", stats.TotalPackets)
	}
	if stats.TotalBytes != 150 {
		t.Errorf("TotalBytes = %d, want 150", stats.TotalBytes)
	}
	if stats.AverageSize != 75 {
		t.Errorf("AverageSize = %f, want 75", stats.AverageSize)
	}
	if stats.TopProtocol != "TCP" {
		t.Errorf("TopProtocol = %q, want TCP", stats.TopProtocol)
	}
	if stats.UniqueProtocols != 1 {
		t.Errorf("UniqueProtocols = %d, want 1", stats.UniqueProtocols)
	}
}

func TestComputeStats_TimeRange(t *testing.T) {
	records := testRecords()
	stats := ComputeStats(records)

	if !stats.FirstSeen.Equal(records[0].Timestamp) {
		t.Errorf("FirstSeen = %v, want %v", stats.FirstSeen, records[0].Timestamp)
	}
	if !stats.LastSeen.Equal(records[2].Timestamp) {
		t.Errorf("LastSeen = %v, want %v", stats.LastSeen, records[2].Timestamp)
	}
	want := "2025-03-01 10:00 to 2025-03-01 10:02"
	if got := stats.TimeRange(); got != want {
		t.Errorf("TimeRange() = %q, want %q", got, want)
	}
}

func TestComputeStats_ModeTieBreaksAlphabetically(t *testing.T) {
	ts := time.Now()
	// UDP and TCP appear once each; the tie must resolve the same way on
	// every run.
	view := []*model.PacketRecord{
		{Timestamp: ts, SourceIP: "x", DestIP: "y", Protocol: "UDP", Length: 1},
		{Timestamp: ts, SourceIP: "x", DestIP: "y", Protocol: "TCP", Length: 1},
	}
	for i := 0; i < 20; i++ {
		if got := ComputeStats(view).TopProtocol; got != "TCP" {
			t.Fatalf("mode tie-break not deterministic: got %q, want TCP", got)
		}
	}
}

func TestComputeFrequency_RanksMostFrequentFirst(t *testing.T) {
	records := testRecords() // TCP x2, UDP x1
	freq, err := ComputeFrequency(records, model.ColumnProtocol, 5)
	if err != nil {
		t.Fatalf("ComputeFrequency failed: %v", err)
	}
	if len(freq) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(freq))
	}
	if freq[0].Value != "TCP" || freq[0].Count != 2 {
		t.Errorf("first entry = %+v, want TCP/2", freq[0])
	}
	if freq[1].Value != "UDP" || freq[1].Count != 1 {
		t.Errorf("second entry = %+v, want UDP/1", freq[1])
	}
}

func TestComputeFrequency_TiesKeepFirstSeenOrder(t *testing.T) {
	ts := time.Now()
	view := []*model.PacketRecord{
		{Timestamp: ts, DestIP: "z.example", Length: 1},
		{Timestamp: ts, DestIP: "a.example", Length: 1},
		{Timestamp: ts, DestIP: "m.example", Length: 1},
	}
	freq, err := ComputeFrequency(view, model.ColumnDestIP, 0)
	if err != nil {
		t.Fatalf("ComputeFrequency failed: %v", err)
	}
	want := []string{"z.example", "a.example", "m.example"}
	for i, entry := range freq {
		if entry.Value != want[i] {
			t.Fatalf("tied entries reordered: got %v at %d, want %v", entry.Value, i, want[i])
		}
	}
}

func TestComputeFrequency_TopNTruncates(t *testing.T) {
	var view []*model.PacketRecord
	ts := time.Now()
	for i := 0; i < 10; i++ {
		view = append(view, &model.PacketRecord{Timestamp: ts, DestIP: string(rune('a' + i)), Length: 1})
	}
	freq, err := ComputeFrequency(view, model.ColumnDestIP, 5)
	if err != nil {
		t.Fatalf("ComputeFrequency failed: %v", err)
	}
	if len(freq) != 5 {
		t.Errorf("expected 5 entries after truncation, got %d", len(freq))
	}
}

func TestComputeFrequency_EmptyView(t *testing.T) {
	freq, err := ComputeFrequency(nil, model.ColumnProtocol, 5)
	if err != nil {
		t.Fatalf("ComputeFrequency failed: %v", err)
	}
	if len(freq) != 0 {
		t.Errorf("expected empty table, got %d entries", len(freq))
	}
}

func TestComputeFrequency_UnknownField(t *testing.T) {
	if _, err := ComputeFrequency(testRecords(), "Banana", 5); err == nil {
		t.Fatal("expected an error for an unknown field")
	}
}

func TestFrequencyTable_MarshalPreservesOrder(t *testing.T) {
	table := FrequencyTable{
		{Value: "TCP", Count: 9},
		{Value: "DNS", Count: 4},
		{Value: "ARP", Count: 1},
	}
	got, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"TCP":9,"DNS":4,"ARP":1}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestFrequencyTable_MarshalEmpty(t *testing.T) {
	got, err := json.Marshal(FrequencyTable{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("Marshal = %s, want {}", got)
	}
}
