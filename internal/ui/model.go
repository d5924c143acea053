package ui

import (
	"fmt"
	"strconv"
	"strings"

	"TrafficLens/internal/core/model"
	"TrafficLens/internal/engine"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("39")
	dim    = lipgloss.Color("245")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(accent).
			Padding(0, 2)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(dim)

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("255")).
			Background(accent).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)

	sectionStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(dim)
	valueStyle = lipgloss.NewStyle().Foreground(accent)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(accent).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

type filterField int

const (
	filterProtocol filterField = iota
	filterSource
	filterDest
)

const barWidth = 40

// Model is the dashboard state. Every keypress recomputes the view
// synchronously through the shared engine; the loaded table itself is
// never touched.
type Model struct {
	table *model.Table
	view  []*model.PacketRecord

	tabs      []string
	activeTab int

	protocolFilter string
	sourceFilter   string
	destFilter     string
	activeFilter   filterField
	editing        bool

	sortState engine.SortState

	scrollPos int
	rowLimit  int
	topN      int
	width     int
	height    int
	status    string
}

// New creates a dashboard over a loaded record table.
func New(table *model.Table, rowLimit, topN int) Model {
	m := Model{
		table: table,
		tabs: []string{
			"Overview",
			"Packets",
			"Protocols",
			"Top Destinations",
		},
		rowLimit: rowLimit,
		topN:     topN,
		status:   fmt.Sprintf("Loaded %d packets.", table.Len()),
	}
	m.recompute()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.editing {
		switch key {
		case "enter", "esc":
			m.editing = false
			m.recompute()
			m.status = fmt.Sprintf("Filters applied. Displaying %d packets.", len(m.view))
		case "tab", "down":
			if m.activeFilter < filterDest {
				m.activeFilter++
			}
		case "shift+tab", "up":
			if m.activeFilter > filterProtocol {
				m.activeFilter--
			}
		case "backspace":
			field := m.filterValue(m.activeFilter)
			if len(*field) > 0 {
				*field = (*field)[:len(*field)-1]
			}
		default:
			if len(key) == 1 {
				*m.filterValue(m.activeFilter) += key
			}
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "left":
		if m.activeTab > 0 {
			m.activeTab--
			m.scrollPos = 0
		}
	case "right":
		if m.activeTab < len(m.tabs)-1 {
			m.activeTab++
			m.scrollPos = 0
		}
	case "up", "k":
		if m.scrollPos > 0 {
			m.scrollPos--
		}
	case "down", "j":
		if m.scrollPos < m.maxScroll() {
			m.scrollPos++
		}
	case "enter", "f":
		m.editing = true
		m.activeTab = 1
	case "c":
		m.protocolFilter = ""
		m.sourceFilter = ""
		m.destFilter = ""
		m.sortState.Reset()
		m.recompute()
		m.status = fmt.Sprintf("All filters cleared. Displaying %d packets.", len(m.view))
	case "1", "2", "3", "4", "5", "6":
		idx, _ := strconv.Atoi(key)
		m.sortBy(model.Columns[idx-1])
	}
	return m, nil
}

func (m *Model) filterValue(f filterField) *string {
	switch f {
	case filterProtocol:
		return &m.protocolFilter
	case filterSource:
		return &m.sourceFilter
	default:
		return &m.destFilter
	}
}

// sortBy toggles direction when the same column is requested again.
func (m *Model) sortBy(column string) {
	spec := m.sortState.Next(column)
	sorted, err := engine.ApplySort(m.view, spec)
	if err != nil {
		m.status = fmt.Sprintf("Error sorting by %s: %v", column, err)
		return
	}
	m.view = sorted
	direction := "ascending"
	if !spec.Ascending {
		direction = "descending"
	}
	m.status = fmt.Sprintf("Sorted by %s %s.", column, direction)
}

// recompute rebuilds the view from the table: filters first, then the
// remembered sort, if any.
func (m *Model) recompute() {
	m.view = engine.ApplyFilters(m.table.View(), engine.FilterSpec{
		Protocol:       m.protocolFilter,
		SourceContains: m.sourceFilter,
		DestContains:   m.destFilter,
	})
	if col := m.sortState.Column(); col != "" {
		sorted, err := engine.ApplySort(m.view, engine.SortSpec{
			Column:    col,
			Ascending: m.sortState.Ascending(),
		})
		if err == nil {
			m.view = sorted
		}
	}
	if m.scrollPos > m.maxScroll() {
		m.scrollPos = m.maxScroll()
	}
}

func (m Model) visibleRows() int {
	rows := m.rowLimit
	if len(m.view) < rows {
		rows = len(m.view)
	}
	return rows
}

func (m Model) maxScroll() int {
	max := m.visibleRows() - m.pageSize()
	if max < 0 {
		return 0
	}
	return max
}

func (m Model) pageSize() int {
	if m.height > 18 {
		return m.height - 18
	}
	return 10
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Network Traffic Analyzer Dashboard"))
	s.WriteString("\n\n")

	for i, tab := range m.tabs {
		if i == m.activeTab {
			s.WriteString(activeTabStyle.Render(tab))
		} else {
			s.WriteString(tabStyle.Render(tab))
		}
	}
	s.WriteString("\n")

	switch m.activeTab {
	case 0:
		s.WriteString(m.renderOverview())
	case 1:
		s.WriteString(m.renderPackets())
	case 2:
		s.WriteString(m.renderProtocolChart())
	case 3:
		s.WriteString(m.renderTopDestChart())
	}

	s.WriteString("\n")
	s.WriteString(statusStyle.Render(" " + m.status))
	s.WriteString("\n")
	s.WriteString(labelStyle.Render(" q:quit | ←/→:tabs | ↑/↓:scroll | f:filters | c:clear | 1-6:sort column"))
	return s.String()
}

func (m Model) renderOverview() string {
	stats := engine.ComputeStats(m.view)

	metrics := []struct {
		label string
		value string
	}{
		{"Total Packets", fmt.Sprintf("%d", stats.TotalPackets)},
		{"Total Data", fmt.Sprintf("%.2f MB (%d bytes)", float64(stats.TotalBytes)/(1024*1024), stats.TotalBytes)},
		{"Avg Packet Size", fmt.Sprintf("%.0f bytes", stats.AverageSize)},
		{"Top Protocol", orNA(stats.TopProtocol)},
		{"Top Source IP", orNA(stats.TopSourceIP)},
		{"Top Dest IP", orNA(stats.TopDestIP)},
		{"Unique Protocols", fmt.Sprintf("%d", stats.UniqueProtocols)},
		{"Time Range", stats.TimeRange()},
	}

	var lines []string
	lines = append(lines, sectionStyle.Render("Key Metrics"))
	lines = append(lines, "")
	for _, metric := range metrics {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-18s", metric.label+":"))+valueStyle.Render(metric.value))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPackets() string {
	var lines []string

	lines = append(lines, sectionStyle.Render("Filters"))
	lines = append(lines, labelStyle.Render("Press f/enter to edit, enter again to apply"))

	fields := []struct {
		field filterField
		name  string
		value string
	}{
		{filterProtocol, "Protocol", m.protocolFilter},
		{filterSource, "Source IP", m.sourceFilter},
		{filterDest, "Dest IP", m.destFilter},
	}
	for _, f := range fields {
		line := labelStyle.Render(f.name + ": ")
		if m.editing && m.activeFilter == f.field {
			line += selectedStyle.Render(f.value + "▊")
		} else {
			line += valueStyle.Render(f.value)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	if col := m.sortState.Column(); col != "" {
		dir := "↑"
		if !m.sortState.Ascending() {
			dir = "↓"
		}
		lines = append(lines, labelStyle.Render(fmt.Sprintf("Sort: %s %s", col, dir)))
	}
	lines = append(lines, sectionStyle.Render(fmt.Sprintf("Raw Packet Data (limited to %d rows)", m.rowLimit)))

	header := fmt.Sprintf("%-20s %-16s %-16s %-9s %7s %6s",
		model.ColumnTimestamp, model.ColumnSourceIP, model.ColumnDestIP,
		model.ColumnProtocol, model.ColumnLength, model.ColumnPort)
	lines = append(lines, sectionStyle.Render(header))

	rows := m.visibleRows()
	start := m.scrollPos
	end := start + m.pageSize()
	if end > rows {
		end = rows
	}
	for i := start; i < end; i++ {
		rec := m.view[i]
		port := ""
		if rec.Port != nil {
			port = strconv.Itoa(*rec.Port)
		}
		lines = append(lines, fmt.Sprintf("%-20s %-16s %-16s %-9s %7d %6s",
			rec.Timestamp.Format(model.TimestampLayout),
			rec.SourceIP, rec.DestIP, rec.Protocol, rec.Length, port))
	}
	if rows == 0 {
		lines = append(lines, labelStyle.Render("(no packets match the current filters)"))
	} else if rows > end-start {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("Showing rows %d-%d of %d (of %d matching)",
			start+1, end, rows, len(m.view))))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderProtocolChart() string {
	freq, err := engine.ComputeFrequency(m.view, model.ColumnProtocol, 0)
	if err != nil {
		return panelStyle.Render(err.Error())
	}
	return panelStyle.Render(renderBars("Protocol Frequency", freq))
}

func (m Model) renderTopDestChart() string {
	freq, err := engine.ComputeFrequency(m.view, model.ColumnDestIP, m.topN)
	if err != nil {
		return panelStyle.Render(err.Error())
	}
	return panelStyle.Render(renderBars(fmt.Sprintf("Top %d Destination IPs", m.topN), freq))
}

// renderBars draws a horizontal bar chart scaled to the largest count.
func renderBars(title string, freq engine.FrequencyTable) string {
	var lines []string
	lines = append(lines, sectionStyle.Render(title))
	lines = append(lines, "")

	if len(freq) == 0 {
		lines = append(lines, labelStyle.Render("No data to display"))
		return strings.Join(lines, "\n")
	}

	max := freq[0].Count
	for _, entry := range freq {
		if entry.Count > max {
			max = entry.Count
		}
	}

	for _, entry := range freq {
		length := entry.Count * barWidth / max
		bar := strings.Repeat("█", length)
		lines = append(lines, fmt.Sprintf("%-16s %6d %s",
			entry.Value, entry.Count, valueStyle.Render(bar)))
	}
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
