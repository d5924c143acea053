package report

import (
	"strings"
	"testing"
	"time"

	"TrafficLens/internal/core/model"
)

func TestRender(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	port := 80
	view := []*model.PacketRecord{
		{Timestamp: base, SourceIP: "A", DestIP: "B", Protocol: "TCP", Length: 100, Port: &port},
		{Timestamp: base.Add(time.Minute), SourceIP: "A", DestIP: "C", Protocol: "UDP", Length: 200},
		{Timestamp: base.Add(2 * time.Minute), SourceIP: "C", DestIP: "B", Protocol: "TCP", Length: 50},
	}

	var buf strings.Builder
	rp := Report{RowLimit: 200, TopN: 5}
	if err := rp.Render(&buf, view); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Key Metrics",
		"Total packets",
		"350", // total bytes
		"Protocol Frequency",
		"Top 5 Destination IPs",
		"Packet Records (3 of 3)",
		"2025-03-01 10:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q", want)
		}
	}
}

func TestRender_EmptyView(t *testing.T) {
	var buf strings.Builder
	rp := Report{RowLimit: 200, TopN: 5}
	if err := rp.Render(&buf, nil); err != nil {
		t.Fatalf("Render failed on empty view: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "N/A") {
		t.Error("empty view should report the N/A time range")
	}
	if !strings.Contains(out, "(no data)") {
		t.Error("empty view should mark the frequency tables as empty")
	}
}

func TestRender_RowLimit(t *testing.T) {
	var view []*model.PacketRecord
	base := time.Now()
	for i := 0; i < 20; i++ {
		view = append(view, &model.PacketRecord{Timestamp: base, SourceIP: "a", DestIP: "b", Protocol: "TCP", Length: 1})
	}

	var buf strings.Builder
	rp := Report{RowLimit: 5, TopN: 5}
	if err := rp.Render(&buf, view); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Packet Records (5 of 20)") {
		t.Error("row limit was not applied to the record table")
	}
}
