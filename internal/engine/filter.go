package engine

import (
	"sort"
	"strings"

	"TrafficLens/internal/core/model"
)

// ProtocolAll is the sentinel protocol value meaning "no protocol filter".
const ProtocolAll = "All"

// FilterSpec describes the predicates applied to a record view. Predicates
// combine with logical AND; empty fields mean "no constraint", never an
// error.
type FilterSpec struct {
	Protocol       string
	SourceContains string
	DestContains   string
}

// IsZero reports whether the spec constrains nothing.
func (s FilterSpec) IsZero() bool {
	return (s.Protocol == "" || s.Protocol == ProtocolAll) &&
		strings.TrimSpace(s.SourceContains) == "" &&
		strings.TrimSpace(s.DestContains) == ""
}

// ApplyFilters returns the records satisfying every predicate in spec.
// The protocol match is exact and case-sensitive, the address matches are
// case-insensitive substring tests. The returned view references the same
// records as the input.
func ApplyFilters(records []*model.PacketRecord, spec FilterSpec) []*model.PacketRecord {
	if spec.IsZero() {
		return records
	}

	source := strings.ToLower(strings.TrimSpace(spec.SourceContains))
	dest := strings.ToLower(strings.TrimSpace(spec.DestContains))
	protocol := spec.Protocol
	if protocol == ProtocolAll {
		protocol = ""
	}

	view := make([]*model.PacketRecord, 0, len(records))
	for _, rec := range records {
		if protocol != "" && rec.Protocol != protocol {
			continue
		}
		if source != "" && !strings.Contains(strings.ToLower(rec.SourceIP), source) {
			continue
		}
		if dest != "" && !strings.Contains(strings.ToLower(rec.DestIP), dest) {
			continue
		}
		view = append(view, rec)
	}
	return view
}

// Protocols returns the filter choices for the protocol predicate: the
// ProtocolAll sentinel followed by every distinct protocol in the table,
// sorted.
func Protocols(records []*model.PacketRecord) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, rec := range records {
		if _, ok := seen[rec.Protocol]; ok {
			continue
		}
		seen[rec.Protocol] = struct{}{}
		names = append(names, rec.Protocol)
	}
	sort.Strings(names)
	return append([]string{ProtocolAll}, names...)
}
