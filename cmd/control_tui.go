// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Focus states
const (
	focusLEDList = iota
	focusItemList
	focusValueInput
	focusButton
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// ledItem is one LED of the list panel
type ledItem struct {
	state ledSnapshot
}

// Implement list.Item interface
func (i ledItem) Title() string { return i.state.LED }
func (i ledItem) Description() string {
	if i.state.Err != nil {
		return "read failed"
	}
	return orDash(i.state.Indicator)
}
func (i ledItem) FilterValue() string { return i.state.LED }

// controlModel is the Bubble Tea model for the control TUI
type controlModel struct {
	source string
	alias  string
	poll   func() (snapshot, error)
	apply  func(controlAction) error

	// LED state from the last successful read
	leds    []ledSnapshot
	ledList list.Model
	loaded  bool

	// Control
	itemCursor   int
	valueInput   textinput.Model
	focusedField int
	busy         bool

	eventLog      []eventLogEntry
	maxLogEntries int

	// UI state
	width    int
	height   int
	quitting bool
}

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type appliedMsg struct {
	action controlAction
	err    error
}

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialControlModel(source, alias string, poll func() (snapshot, error), apply func(controlAction) error) controlModel {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 32
	ti.Width = 30

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)
	ledList := list.New([]list.Item{}, delegate, 30, 10)
	ledList.Title = "LEDs"
	ledList.SetShowStatusBar(false)
	ledList.SetShowHelp(false)
	ledList.SetFilteringEnabled(false)

	return controlModel{
		source:        source,
		alias:         alias,
		poll:          poll,
		apply:         apply,
		ledList:       ledList,
		valueInput:    ti,
		focusedField:  focusLEDList,
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m controlModel) Init() tea.Cmd {
	return m.pollCmd()
}

func (m controlModel) pollCmd() tea.Cmd {
	poll := m.poll
	return func() tea.Msg {
		snap, err := poll()
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m controlModel) applyCmd(action controlAction) tea.Cmd {
	apply := m.apply
	return func() tea.Msg {
		return appliedMsg{action: action, err: apply(action)}
	}
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateListSize()
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("Read failed: %v", msg.err), true)
			return m, nil
		}
		for _, led := range msg.snap.LEDs {
			if led.Err != nil {
				m.addLogEntry(fmt.Sprintf("%s: %v", led.LED, led.Err), true)
			}
		}
		if !m.loaded {
			m.addLogEntry(fmt.Sprintf("Found %d LED(s)", len(msg.snap.LEDs)), false)
		}
		m.loaded = true
		m.leds = msg.snap.LEDs
		m.updateLEDList()
		if selected := m.getSelectedLED(); selected == nil || m.itemCursor >= len(selected.Settings) {
			m.itemCursor = 0
		}
		return m, nil

	case appliedMsg:
		m.busy = false
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("Failed to %s: %v", msg.action, msg.err), true)
			return m, nil
		}
		m.addLogEntry(strings.ToUpper(msg.action.String()[:1])+msg.action.String()[1:], false)
		if !msg.action.Save {
			m.valueInput.Reset()
		}
		return m, m.pollCmd()
	}

	var cmd tea.Cmd
	if m.focusedField == focusValueInput {
		m.valueInput, cmd = m.valueInput.Update(msg)
	}
	return m, cmd
}

func (m controlModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	typing := m.focusedField == focusValueInput

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil

	case "enter":
		if m.focusedField == focusValueInput || m.focusedField == focusButton {
			return m.submit()
		}
		return m, nil
	}

	if !typing {
		switch msg.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit

		case "r":
			return m, m.pollCmd()

		case "s":
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.applyCmd(controlAction{Save: true})

		case "up", "k", "down", "j":
			if m.focusedField == focusItemList {
				m.moveItemCursor(msg.String() == "down" || msg.String() == "j")
				return m, nil
			}
			if m.focusedField == focusLEDList {
				before := m.ledList.Index()
				var cmd tea.Cmd
				m.ledList, cmd = m.ledList.Update(msg)
				if m.ledList.Index() != before {
					m.itemCursor = 0
					m.valueInput.Reset()
				}
				return m, cmd
			}
		}
		return m, nil
	}

	// Pass through to the value input
	var cmd tea.Cmd
	m.valueInput, cmd = m.valueInput.Update(msg)
	return m, cmd
}

// cycleFocus moves the focus. Only the LED list can be focused while the
// selected LED has no control items.
func (m *controlModel) cycleFocus(delta int) {
	selected := m.getSelectedLED()
	if selected == nil || len(selected.Settings) == 0 {
		m.focusedField = focusLEDList
		m.valueInput.Blur()
		return
	}

	m.focusedField = (m.focusedField + delta + focusButton + 1) % (focusButton + 1)

	if m.focusedField == focusValueInput {
		m.valueInput.Focus()
	} else {
		m.valueInput.Blur()
	}
}

func (m *controlModel) moveItemCursor(down bool) {
	selected := m.getSelectedLED()
	if selected == nil || len(selected.Settings) == 0 {
		return
	}
	if down && m.itemCursor < len(selected.Settings)-1 {
		m.itemCursor++
	}
	if !down && m.itemCursor > 0 {
		m.itemCursor--
	}
}

// submit applies the typed value to the control item under the cursor.
func (m controlModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		m.addLogEntry("Previous change still running", true)
		return m, nil
	}

	selected := m.getSelectedLED()
	if selected == nil || m.itemCursor >= len(selected.Settings) {
		return m, nil
	}

	item := selected.Settings[m.itemCursor].Item
	value := strings.TrimSpace(m.valueInput.Value())
	if value == "" {
		m.addLogEntry(fmt.Sprintf("Enter a value for %s", item), true)
		return m, nil
	}

	m.busy = true
	return m, m.applyCmd(controlAction{
		LED:       selected.LED,
		Indicator: selected.Indicator,
		Item:      item,
		Value:     value,
	})
}

func (m controlModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	focusedBoxStyle := boxStyle.
		BorderForeground(lipgloss.Color("12"))

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Padding(0, 2)

	focusedButtonStyle := buttonStyle.
		Background(lipgloss.Color("10"))

	// Header
	alias := m.alias
	if alias == "" {
		alias = "default"
	}
	s.WriteString(titleStyle.Render("NUCWMI - LED CONTROL"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render(fmt.Sprintf("| %s | Spec: %s | q=quit Tab=switch s=save", m.source, alias)))
	s.WriteString("\n\n")

	if !m.loaded {
		s.WriteString(warningStyle.Render("Reading LED state..."))
		s.WriteString("\n\n")
		s.WriteString(m.renderEventLog(labelStyle, warningStyle, boxStyle))
		return s.String()
	}

	// Layout: left panel (LEDs) | right panel (control items)
	leftWidth := 30
	rightWidth := m.width - leftWidth - 6
	if rightWidth < 30 {
		rightWidth = 30
	}

	listStyle := boxStyle.Width(leftWidth)
	if m.focusedField == focusLEDList {
		listStyle = focusedBoxStyle.Width(leftWidth)
	}
	ledPanel := listStyle.Render(m.ledList.View())

	controlPanel := boxStyle.Width(rightWidth).Render(
		m.renderControlPanel(labelStyle, valueStyle, headerStyle, buttonStyle, focusedButtonStyle))

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, ledPanel, " ", controlPanel))
	s.WriteString("\n\n")

	s.WriteString(m.renderEventLog(labelStyle, warningStyle, boxStyle))

	return s.String()
}

//////////////////////////////////////////////////////////////
// View Helpers
//////////////////////////////////////////////////////////////

func (m controlModel) renderControlPanel(labelStyle, valueStyle, headerStyle, buttonStyle, focusedButtonStyle lipgloss.Style) string {
	var s strings.Builder

	selected := m.getSelectedLED()
	if selected == nil {
		s.WriteString(headerStyle.Render("No LED selected"))
		return s.String()
	}

	s.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Selected:"), selected.LED))
	s.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Color Type:"), valueStyle.Render(orDash(selected.ColorType))))
	s.WriteString(fmt.Sprintf("%s %s\n\n", labelStyle.Render("Indicator:"), valueStyle.Render(orDash(selected.Indicator))))

	if selected.Err != nil {
		s.WriteString(headerStyle.Render(fmt.Sprintf("Read failed: %v", selected.Err)))
		return s.String()
	}
	if len(selected.Settings) == 0 {
		s.WriteString(headerStyle.Render("No control items for this indicator option"))
		return s.String()
	}

	for i, setting := range selected.Settings {
		marker := "  "
		if i == m.itemCursor {
			marker = "> "
			if m.focusedField != focusItemList {
				marker = "* "
			}
		}
		s.WriteString(fmt.Sprintf("%s%s %s\n", marker, labelStyle.Render(setting.Item+":"), valueStyle.Render(setting.Value)))
	}
	s.WriteString("\n")

	s.WriteString(labelStyle.Render("New value: "))
	if m.focusedField == focusValueInput {
		s.WriteString(m.valueInput.View())
	} else {
		s.WriteString(fmt.Sprintf("[%s]", m.valueInput.Value()))
	}
	s.WriteString("\n\n")

	btnText := "[ Apply ]"
	if m.busy {
		btnText = "[ Applying... ]"
	}
	if m.focusedField == focusButton {
		s.WriteString(focusedButtonStyle.Render(btnText))
	} else {
		s.WriteString(buttonStyle.Render(btnText))
	}

	return s.String()
}

func (m controlModel) renderEventLog(labelStyle, warningStyle, boxStyle lipgloss.Style) string {
	var s strings.Builder
	s.WriteString(labelStyle.Render("EVENTS"))
	s.WriteString("\n")

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	logHeight := 8
	if len(m.eventLog) < logHeight {
		logHeight = len(m.eventLog)
	}
	startIdx := len(m.eventLog) - logHeight

	if len(m.eventLog) == 0 {
		s.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			icon := "i"
			style := warningStyle
			if entry.isError {
				icon = "x"
				style = errorStyle
			}
			s.WriteString(fmt.Sprintf("%s %s %s\n",
				headerStyle.Render(entry.timestamp.Format("15:04:05")),
				style.Render(icon),
				entry.message))
		}
	}

	return boxStyle.Width(m.width - 4).Render(s.String())
}

//////////////////////////////////////////////////////////////
// Helpers
//////////////////////////////////////////////////////////////

func (m *controlModel) addLogEntry(message string, isError bool) {
	m.eventLog = append(m.eventLog, eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})

	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func (m *controlModel) getSelectedLED() *ledSnapshot {
	idx := m.ledList.Index()
	if idx < 0 || idx >= len(m.leds) {
		return nil
	}
	return &m.leds[idx]
}

func (m *controlModel) updateLEDList() {
	items := make([]list.Item, len(m.leds))
	for i, led := range m.leds {
		items[i] = ledItem{state: led}
	}
	m.ledList.SetItems(items)
}

func (m *controlModel) updateListSize() {
	listHeight := m.height / 3
	if listHeight < 5 {
		listHeight = 5
	}
	m.ledList.SetSize(28, listHeight)
}
