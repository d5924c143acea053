package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"TrafficLens/internal/core/model"
)

const sampleCSV = `Timestamp,Source IP,Dest IP,Protocol,Length,Port
2025-03-01 10:00:00,192.168.1.5,8.8.8.8,DNS,74,53
2025-03-01 10:00:01,192.168.1.5,93.184.216.34,HTTPS,1380,443
2025-03-01 10:00:02,10.0.0.9,192.168.1.5,ICMP,98,
`

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", table.Len())
	}

	first := table.Records[0]
	wantTS := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	if !first.Timestamp.Equal(wantTS) {
		t.Errorf("Timestamp = %v, want %v", first.Timestamp, wantTS)
	}
	if first.SourceIP != "192.168.1.5" || first.DestIP != "8.8.8.8" {
		t.Errorf("addresses = %q -> %q", first.SourceIP, first.DestIP)
	}
	if first.Protocol != "DNS" || first.Length != 74 {
		t.Errorf("protocol/length = %q/%d", first.Protocol, first.Length)
	}
	if first.Port == nil || *first.Port != 53 {
		t.Errorf("Port = %v, want 53", first.Port)
	}

	// Empty port column stays unset rather than zero.
	if table.Records[2].Port != nil {
		t.Errorf("expected nil port for the ICMP record, got %d", *table.Records[2].Port)
	}
}

func TestRead_ColumnOrderIsFree(t *testing.T) {
	shuffled := `Protocol,Length,Timestamp,Port,Dest IP,Source IP
TCP,100,2025-03-01 10:00:00,80,b.example,a.example
`
	table, err := Read(strings.NewReader(shuffled))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	rec := table.Records[0]
	if rec.SourceIP != "a.example" || rec.DestIP != "b.example" || rec.Length != 100 {
		t.Errorf("columns were not matched by header name: %+v", rec)
	}
}

func TestRead_Errors(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"missing column", "Timestamp,Source IP\n2025-03-01 10:00:00,a\n"},
		{"bad timestamp", "Timestamp,Source IP,Dest IP,Protocol,Length,Port\nyesterday,a,b,TCP,10,80\n"},
		{"bad length", "Timestamp,Source IP,Dest IP,Protocol,Length,Port\n2025-03-01 10:00:00,a,b,TCP,ten,80\n"},
		{"bad port", "Timestamp,Source IP,Dest IP,Protocol,Length,Port\n2025-03-01 10:00:00,a,b,TCP,10,99999\n"},
		{"empty file", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tc.csv)); err == nil {
				t.Fatalf("expected an error for %s", tc.name)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	port := 443
	original := &model.Table{Records: []*model.PacketRecord{
		{
			Timestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			SourceIP:  "192.168.1.5",
			DestIP:    "93.184.216.34",
			Protocol:  "HTTPS",
			Length:    1380,
			Port:      &port,
		},
		{
			Timestamp: time.Date(2025, 3, 1, 10, 0, 1, 0, time.UTC),
			SourceIP:  "10.0.0.9",
			DestIP:    "192.168.1.5",
			Protocol:  "ICMP",
			Length:    98,
		},
	}}

	path := filepath.Join(t.TempDir(), "traffic.csv")
	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != original.Len() {
		t.Fatalf("round trip lost records: %d != %d", loaded.Len(), original.Len())
	}
	for i := range original.Records {
		want, got := original.Records[i], loaded.Records[i]
		if !got.Timestamp.Equal(want.Timestamp) ||
			got.SourceIP != want.SourceIP ||
			got.DestIP != want.DestIP ||
			got.Protocol != want.Protocol ||
			got.Length != want.Length {
			t.Errorf("record %d changed in round trip: %+v != %+v", i, got, want)
		}
	}
	if loaded.Records[0].Port == nil || *loaded.Records[0].Port != 443 {
		t.Error("set port did not survive the round trip")
	}
	if loaded.Records[1].Port != nil {
		t.Error("unset port did not survive the round trip")
	}
}

func TestLoad_LeavesNoPartialTableOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	content := "Timestamp,Source IP,Dest IP,Protocol,Length,Port\n" +
		"2025-03-01 10:00:00,a,b,TCP,10,80\n" +
		"garbage,a,b,TCP,10,80\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for the malformed row")
	}
	if table != nil {
		t.Error("a failed load must not return a partial table")
	}
}
