package report

import (
	"fmt"
	"io"
	"strconv"

	"TrafficLens/internal/core/model"
	"TrafficLens/internal/engine"

	"github.com/olekukonko/tablewriter"
)

// Report renders a one-shot text report of a view: key metrics, the
// protocol frequency ranking and the top destination addresses.
type Report struct {
	RowLimit int
	TopN     int
}

// Render writes the full report for the view to w.
func (rp Report) Render(w io.Writer, view []*model.PacketRecord) error {
	rp.renderStats(w, engine.ComputeStats(view))

	protocols, err := engine.ComputeFrequency(view, model.ColumnProtocol, 0)
	if err != nil {
		return err
	}
	renderFrequency(w, "Protocol Frequency", "Protocol", protocols)

	topDest, err := engine.ComputeFrequency(view, model.ColumnDestIP, rp.TopN)
	if err != nil {
		return err
	}
	renderFrequency(w, fmt.Sprintf("Top %d Destination IPs", rp.TopN), "Dest IP", topDest)

	rp.renderRecords(w, view)
	return nil
}

func (rp Report) renderStats(w io.Writer, stats engine.Stats) {
	fmt.Fprintln(w, "Key Metrics")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Total packets", strconv.Itoa(stats.TotalPackets)})
	table.Append([]string{"Total bytes", strconv.FormatInt(stats.TotalBytes, 10)})
	table.Append([]string{"Avg packet size", fmt.Sprintf("%.0f bytes", stats.AverageSize)})
	table.Append([]string{"Top protocol", orNA(stats.TopProtocol)})
	table.Append([]string{"Top source IP", orNA(stats.TopSourceIP)})
	table.Append([]string{"Top dest IP", orNA(stats.TopDestIP)})
	table.Append([]string{"Unique protocols", strconv.Itoa(stats.UniqueProtocols)})
	table.Append([]string{"Time range", stats.TimeRange()})
	table.Render()
	fmt.Fprintln(w)
}

func renderFrequency(w io.Writer, title, column string, freq engine.FrequencyTable) {
	fmt.Fprintln(w, title)
	if len(freq) == 0 {
		fmt.Fprintln(w, "(no data)")
		fmt.Fprintln(w)
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{column, "Count"})
	for _, entry := range freq {
		table.Append([]string{entry.Value, strconv.Itoa(entry.Count)})
	}
	table.Render()
	fmt.Fprintln(w)
}

func (rp Report) renderRecords(w io.Writer, view []*model.PacketRecord) {
	shown := len(view)
	if rp.RowLimit > 0 && shown > rp.RowLimit {
		shown = rp.RowLimit
	}

	fmt.Fprintf(w, "Packet Records (%d of %d)\n", shown, len(view))
	if shown == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(model.Columns)
	for _, rec := range view[:shown] {
		port := ""
		if rec.Port != nil {
			port = strconv.Itoa(*rec.Port)
		}
		table.Append([]string{
			rec.Timestamp.Format(model.TimestampLayout),
			rec.SourceIP,
			rec.DestIP,
			rec.Protocol,
			strconv.Itoa(rec.Length),
			port,
		})
	}
	table.Render()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
