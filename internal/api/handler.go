package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"TrafficLens/internal/core/model"
	"TrafficLens/internal/engine"

	"github.com/gorilla/mux"
)

// Handler serves the JSON API over a read-only record table. The table is
// loaded once at process start and passed in; requests never mutate it.
type Handler struct {
	table    *model.Table
	rowLimit int
	topN     int
}

// NewHandler creates an API handler over the given table.
func NewHandler(table *model.Table, rowLimit, topN int) *Handler {
	return &Handler{table: table, rowLimit: rowLimit, topN: topN}
}

// NewRouter builds the API route table.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/stats", h.statsHandler).Methods("GET")
	r.HandleFunc("/api/data", h.dataHandler).Methods("GET")
	r.HandleFunc("/api/plot/protocol", h.protocolPlotHandler).Methods("GET")
	r.HandleFunc("/api/plot/top_ips", h.topIPsPlotHandler).Methods("GET")
	r.HandleFunc("/api/protocols", h.protocolsHandler).Methods("GET")
	return r
}

// viewFromRequest recomputes the filtered (and optionally sorted) view for
// a single request. All state lives in the query parameters.
func (h *Handler) viewFromRequest(r *http.Request) ([]*model.PacketRecord, error) {
	q := r.URL.Query()

	view := engine.ApplyFilters(h.table.View(), engine.FilterSpec{
		Protocol:       q.Get("protocol"),
		SourceContains: q.Get("source_ip"),
		DestContains:   q.Get("dest_ip"),
	})

	if sortBy := q.Get("sort_by"); sortBy != "" {
		ascending := true
		if raw := q.Get("ascending"); raw != "" {
			ascending = strings.EqualFold(raw, "true") || raw == "1"
		}
		sorted, err := engine.ApplySort(view, engine.SortSpec{Column: sortBy, Ascending: ascending})
		if err != nil {
			return nil, err
		}
		view = sorted
	}

	return view, nil
}

func (h *Handler) statsHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.viewFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(view) == 0 {
		writeError(w, http.StatusNotFound, "No data")
		return
	}

	stats := engine.ComputeStats(view)
	writeJSON(w, http.StatusOK, map[string]string{
		"total_packets":    formatCount(int64(stats.TotalPackets)),
		"total_data_mb":    formatDataVolume(stats.TotalBytes),
		"avg_packet_size":  fmt.Sprintf("%.0f bytes", stats.AverageSize),
		"top_protocol":     stats.TopProtocol,
		"top_source_ip":    stats.TopSourceIP,
		"top_dest_ip":      stats.TopDestIP,
		"unique_protocols": fmt.Sprintf("%d", stats.UniqueProtocols),
		"time_range":       stats.TimeRange(),
	})
}

func (h *Handler) dataHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.viewFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(view) > h.rowLimit {
		view = view[:h.rowLimit]
	}

	rows := make([]map[string]interface{}, 0, len(view))
	for _, rec := range view {
		var port interface{}
		if rec.Port != nil {
			port = *rec.Port
		}
		rows = append(rows, map[string]interface{}{
			model.ColumnTimestamp: rec.Timestamp.Format(model.TimestampLayout),
			model.ColumnSourceIP:  rec.SourceIP,
			model.ColumnDestIP:    rec.DestIP,
			model.ColumnProtocol:  rec.Protocol,
			model.ColumnLength:    rec.Length,
			model.ColumnPort:      port,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) protocolPlotHandler(w http.ResponseWriter, r *http.Request) {
	h.plotHandler(w, r, model.ColumnProtocol, 0)
}

func (h *Handler) topIPsPlotHandler(w http.ResponseWriter, r *http.Request) {
	h.plotHandler(w, r, model.ColumnDestIP, h.topN)
}

func (h *Handler) plotHandler(w http.ResponseWriter, r *http.Request, field string, topN int) {
	view, err := h.viewFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	freq, err := engine.ComputeFrequency(view, field, topN)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, freq)
}

func (h *Handler) protocolsHandler(w http.ResponseWriter, r *http.Request) {
	if h.table == nil {
		writeError(w, http.StatusInternalServerError, "Data not loaded")
		return
	}
	writeJSON(w, http.StatusOK, engine.Protocols(h.table.View()))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// formatCount renders an integer with thousands separators ("1,234").
func formatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatDataVolume renders total transfer like "0.29 MB (300,000 bytes)".
func formatDataVolume(totalBytes int64) string {
	mb := float64(totalBytes) / (1024 * 1024)
	return fmt.Sprintf("%.2f MB (%s bytes)", mb, formatCount(totalBytes))
}
