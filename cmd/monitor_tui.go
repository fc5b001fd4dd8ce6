// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for errors, false for changes
}

// TUI model
type monitorModel struct {
	source        string
	alias         string
	interval      time.Duration
	poll          func() (snapshot, error)
	table         table.Model
	last          *snapshot
	started       time.Time
	polls         int
	failedPolls   int
	tickPending   bool
	eventLog      []eventLogEntry
	maxLogEntries int
	width         int
	height        int
	quitting      bool
}

// Messages
type monitorTickMsg time.Time
type snapshotMsg struct {
	snap snapshot
	err  error
}

var monitorColumns = []table.Column{
	{Title: "LED", Width: 18},
	{Title: "Color Type", Width: 24},
	{Title: "Indicator Option", Width: 24},
	{Title: "Brightness", Width: 10},
	{Title: "Status", Width: 12},
}

// formatDuration formats a duration to a human-friendly string
func formatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds <= 0 {
		return "0 seconds"
	}

	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	seconds %= 60
	minutes %= 60
	hours %= 24

	parts := []string{}
	for _, unit := range []struct {
		n    int64
		name string
	}{{days, "day"}, {hours, "hour"}, {minutes, "minute"}, {seconds, "second"}} {
		switch {
		case unit.n == 1:
			parts = append(parts, "1 "+unit.name)
		case unit.n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", unit.n, unit.name))
		}
	}

	// Join with commas and "and" for last item
	if len(parts) == 1 {
		return parts[0]
	}
	if len(parts) == 2 {
		return parts[0] + " and " + parts[1]
	}
	last := parts[len(parts)-1]
	rest := strings.Join(parts[:len(parts)-1], ", ")
	return rest + ", and " + last
}

func initialMonitorModel(source, alias string, interval time.Duration, poll func() (snapshot, error)) monitorModel {
	t := table.New(
		table.WithColumns(monitorColumns),
		table.WithFocused(true),
		table.WithHeight(7),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return monitorModel{
		source:        source,
		alias:         alias,
		interval:      interval,
		poll:          poll,
		table:         t,
		started:       time.Now(),
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return m.pollCmd()
}

func (m monitorModel) pollCmd() tea.Cmd {
	poll := m.poll
	return func() tea.Msg {
		snap, err := poll()
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m monitorModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

// scheduleTick arms the next periodic poll unless one is already armed, so
// manual refreshes join the running tick chain.
func (m monitorModel) scheduleTick() (monitorModel, tea.Cmd) {
	if m.tickPending {
		return m, nil
	}
	m.tickPending = true
	return m, m.tickCmd()
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, m.pollCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case monitorTickMsg:
		m.tickPending = false
		return m, m.pollCmd()

	case snapshotMsg:
		m.polls++
		if msg.err != nil {
			m.failedPolls++
			m.addLogEntry(fmt.Sprintf("Refresh failed: %v", msg.err), true)
			return m.scheduleTick()
		}

		if m.last != nil {
			for _, change := range diffSnapshots(*m.last, msg.snap) {
				m.addLogEntry(change, false)
			}
		}
		for _, led := range msg.snap.LEDs {
			if led.Err != nil {
				m.addLogEntry(fmt.Sprintf("%s: %v", led.LED, led.Err), true)
			}
		}

		snap := msg.snap
		m.last = &snap
		m.table.SetRows(snapshotRows(snap))
		return m.scheduleTick()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	entry := eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

// snapshotRows renders one table row per LED.
func snapshotRows(snap snapshot) []table.Row {
	rows := make([]table.Row, 0, len(snap.LEDs))
	for _, led := range snap.LEDs {
		brightness := "-"
		if led.HasBrightness {
			brightness = strconv.Itoa(led.Brightness) + "%"
		}
		status := "OK"
		if led.Err != nil {
			status = "ERROR"
		}
		rows = append(rows, table.Row{
			led.LED,
			orDash(led.ColorType),
			orDash(led.Indicator),
			brightness,
			status,
		})
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// diffSnapshots describes what changed between two snapshots of the same
// board, one line per changed LED attribute.
func diffSnapshots(prev, next snapshot) []string {
	var changes []string

	if prev.Version != next.Version && next.Version != "" {
		changes = append(changes, fmt.Sprintf("Interface version changed to %s", next.Version))
	}

	before := make(map[string]ledSnapshot, len(prev.LEDs))
	for _, led := range prev.LEDs {
		before[led.LED] = led
	}

	for _, led := range next.LEDs {
		old, ok := before[led.LED]
		if !ok {
			changes = append(changes, fmt.Sprintf("%s appeared", led.LED))
			continue
		}
		if old.Indicator != led.Indicator && led.Indicator != "" {
			changes = append(changes, fmt.Sprintf("%s indicator option: %s -> %s", led.LED, orDash(old.Indicator), led.Indicator))
		}

		settings := make(map[string]string, len(old.Settings))
		for _, s := range old.Settings {
			settings[s.Item] = s.Value
		}
		for _, s := range led.Settings {
			if prevValue, ok := settings[s.Item]; ok && prevValue != s.Value {
				changes = append(changes, fmt.Sprintf("%s %s: %s -> %s", led.LED, s.Item, prevValue, s.Value))
			}
		}
	}

	return changes
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	statsLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	statsValueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	changeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("NUCWMI - LED MONITOR"))
	s.WriteString("\n")
	alias := m.alias
	if alias == "" {
		alias = "default"
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Spec: %s | Every %s | Press 'q' to quit",
		m.source, alias, formatDuration(m.interval))))
	s.WriteString("\n\n")

	// Statistics
	statsContent := strings.Builder{}
	version := "-"
	if m.last != nil && m.last.Version != "" {
		version = m.last.Version
	}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		statsLabelStyle.Render("Version:"), statsValueStyle.Render(version),
		statsLabelStyle.Render("Refreshes:"), statsValueStyle.Render(fmt.Sprintf("%d", m.polls)),
		statsLabelStyle.Render("Failed:"), func() string {
			if m.failedPolls > 0 {
				return errorStyle.Render(fmt.Sprintf("%d", m.failedPolls))
			}
			return statsValueStyle.Render("0")
		}(),
	))
	statsContent.WriteString(fmt.Sprintf("%s %s",
		statsLabelStyle.Render("Watching for:"), statsValueStyle.Render(formatDuration(time.Since(m.started))),
	))
	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// LEDs
	if m.last == nil {
		s.WriteString(changeStyle.Render("Reading LED state..."))
		s.WriteString("\n\n")
	} else {
		s.WriteString(boxStyle.Render(m.table.View()))
		s.WriteString("\n")

		// Control items of the selected LED
		if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.last.LEDs) {
			led := m.last.LEDs[cursor]
			detail := strings.Builder{}
			if len(led.Settings) == 0 {
				detail.WriteString(headerStyle.Render("(no control items)"))
			}
			for i, setting := range led.Settings {
				if i > 0 {
					detail.WriteString("\n")
				}
				detail.WriteString(fmt.Sprintf("%s %s",
					statsLabelStyle.Render(setting.Item+":"), statsValueStyle.Render(setting.Value)))
			}
			s.WriteString(statsLabelStyle.Render(led.LED + " Control Items:"))
			s.WriteString("\n")
			s.WriteString(boxStyle.Render(detail.String()))
			s.WriteString("\n\n")
		}
	}

	// Event log
	s.WriteString(statsLabelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	// Calculate how many log entries we can show
	logHeight := m.height - 30 // Reserve space for header, table and details
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("01/02/06 15:04:05")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					changeStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}
