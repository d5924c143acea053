package engine

import (
	"fmt"
	"sort"

	"TrafficLens/internal/core/model"
)

// SortSpec orders a view by a single column.
type SortSpec struct {
	Column    string
	Ascending bool
}

// ApplySort returns a new view holding the same records ordered by the
// named column. The sort is stable, so ties keep their original relative
// order. An unknown column is a request error, not a silent no-op.
func ApplySort(view []*model.PacketRecord, spec SortSpec) ([]*model.PacketRecord, error) {
	less, err := lessFunc(spec.Column)
	if err != nil {
		return nil, err
	}

	sorted := make([]*model.PacketRecord, len(view))
	copy(sorted, view)

	sort.SliceStable(sorted, func(i, j int) bool {
		if spec.Ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted, nil
}

// lessFunc maps a column name to its ascending comparison. Timestamps
// compare as instants, never as display strings; a nil Port sorts before
// any set port.
func lessFunc(column string) (func(a, b *model.PacketRecord) bool, error) {
	switch column {
	case model.ColumnTimestamp:
		return func(a, b *model.PacketRecord) bool { return a.Timestamp.Before(b.Timestamp) }, nil
	case model.ColumnSourceIP:
		return func(a, b *model.PacketRecord) bool { return a.SourceIP < b.SourceIP }, nil
	case model.ColumnDestIP:
		return func(a, b *model.PacketRecord) bool { return a.DestIP < b.DestIP }, nil
	case model.ColumnProtocol:
		return func(a, b *model.PacketRecord) bool { return a.Protocol < b.Protocol }, nil
	case model.ColumnLength:
		return func(a, b *model.PacketRecord) bool { return a.Length < b.Length }, nil
	case model.ColumnPort:
		return func(a, b *model.PacketRecord) bool { return portValue(a) < portValue(b) }, nil
	default:
		return nil, fmt.Errorf("unknown sort column %q", column)
	}
}

func portValue(r *model.PacketRecord) int {
	if r.Port == nil {
		return -1
	}
	return *r.Port
}

// SortState remembers the single last-sorted column so that repeating a
// sort request on it flips the direction. Sorting a different column
// starts ascending and forgets the previous column.
type SortState struct {
	column    string
	ascending bool
}

// Next records a sort request on column and returns the spec to apply.
func (s *SortState) Next(column string) SortSpec {
	if s.column == column {
		s.ascending = !s.ascending
	} else {
		s.column = column
		s.ascending = true
	}
	return SortSpec{Column: s.column, Ascending: s.ascending}
}

// Column returns the last-sorted column, or "" when nothing was sorted.
func (s *SortState) Column() string { return s.column }

// Ascending reports the direction of the last sort.
func (s *SortState) Ascending() bool { return s.ascending }

// Reset forgets the sort history.
func (s *SortState) Reset() { *s = SortState{} }
