package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"TrafficLens/internal/core/model"
)

// Stats holds the summary metrics computed over a view. A zero view yields
// zero counts and zero times, never an error.
type Stats struct {
	TotalPackets    int
	TotalBytes      int64
	AverageSize     float64
	TopProtocol     string
	TopSourceIP     string
	TopDestIP       string
	UniqueProtocols int
	FirstSeen       time.Time
	LastSeen        time.Time
}

// TimeRangeSentinel is reported when a view has no records to span.
const TimeRangeSentinel = "N/A"

const timeRangeLayout = "2006-01-02 15:04"

// TimeRange renders the observed timestamp span, or the sentinel for an
// empty view.
func (s Stats) TimeRange() string {
	if s.TotalPackets == 0 {
		return TimeRangeSentinel
	}
	return fmt.Sprintf("%s to %s",
		s.FirstSeen.Format(timeRangeLayout),
		s.LastSeen.Format(timeRangeLayout))
}

// ComputeStats aggregates the summary metrics over a view in one pass.
func ComputeStats(view []*model.PacketRecord) Stats {
	var stats Stats
	stats.TotalPackets = len(view)
	if len(view) == 0 {
		return stats
	}

	stats.FirstSeen = view[0].Timestamp
	stats.LastSeen = view[0].Timestamp

	protocols := make(map[string]int)
	sources := make(map[string]int)
	dests := make(map[string]int)

	for _, rec := range view {
		stats.TotalBytes += int64(rec.Length)
		protocols[rec.Protocol]++
		sources[rec.SourceIP]++
		dests[rec.DestIP]++

		if rec.Timestamp.Before(stats.FirstSeen) {
			stats.FirstSeen = rec.Timestamp
		}
		if rec.Timestamp.After(stats.LastSeen) {
			stats.LastSeen = rec.Timestamp
		}
	}

	stats.AverageSize = float64(stats.TotalBytes) / float64(stats.TotalPackets)
	stats.TopProtocol = mode(protocols)
	stats.TopSourceIP = mode(sources)
	stats.TopDestIP = mode(dests)
	stats.UniqueProtocols = len(protocols)
	return stats
}

// mode returns the most frequent key. Ties break to the lexicographically
// smallest value so the result never depends on map iteration order.
func mode(counts map[string]int) string {
	var best string
	bestCount := -1
	for value, count := range counts {
		if count > bestCount || (count == bestCount && value < best) {
			best = value
			bestCount = count
		}
	}
	return best
}

// FrequencyEntry is one (value, count) pair of a frequency table.
type FrequencyEntry struct {
	Value string
	Count int
}

// FrequencyTable is an ordered frequency ranking: counts descend, ties
// keep first-seen view order.
type FrequencyTable []FrequencyEntry

// MarshalJSON renders the table as a JSON object whose keys appear in
// ranking order, matching the shape the chart endpoints serve.
func (t FrequencyTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", entry.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ComputeFrequency counts distinct values of field over the view and
// returns the topN by count descending; ties rank by first appearance in
// the view. topN <= 0 returns the full ranking. Only the string columns
// can be ranked.
func ComputeFrequency(view []*model.PacketRecord, field string, topN int) (FrequencyTable, error) {
	value, err := stringField(field)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string

	for _, rec := range view {
		v := value(rec)
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	table := make(FrequencyTable, 0, len(order))
	for _, v := range order {
		table = append(table, FrequencyEntry{Value: v, Count: counts[v]})
	}
	// entries start in first-seen order; a stable sort by count keeps that
	// order for ties
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})

	if topN > 0 && len(table) > topN {
		table = table[:topN]
	}
	return table, nil
}

func stringField(field string) (func(*model.PacketRecord) string, error) {
	switch field {
	case model.ColumnProtocol:
		return func(r *model.PacketRecord) string { return r.Protocol }, nil
	case model.ColumnSourceIP:
		return func(r *model.PacketRecord) string { return r.SourceIP }, nil
	case model.ColumnDestIP:
		return func(r *model.PacketRecord) string { return r.DestIP }, nil
	default:
		return nil, fmt.Errorf("cannot compute frequency for column %q", field)
	}
}
