package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/fieldref/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateDetail
)

type interactiveModel struct {
	err      error
	filename string
	reports  []*report
	visible  []int
	filter   textinput.Model
	selected int
	state    modelState
}

type loadedMsg struct {
	err     error
	reports []*report
}

func newInteractiveModel(filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter layouts"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{
		filename: filename,
		filter:   ti,
		state:    stateBrowse,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.loadLayouts, textinput.Blink)
}

func (m *interactiveModel) loadLayouts() tea.Msg {
	file, err := config.Load(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	reports := make([]*report, 0, len(file.Layouts))
	for _, l := range file.Layouts {
		r, err := buildReport(l)
		if err != nil {
			return loadedMsg{err: err}
		}
		reports = append(reports, r)
	}
	return loadedMsg{reports: reports}
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, r := range m.reports {
		if q == "" || strings.Contains(strings.ToLower(r.name), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateDetail || m.err != nil {
				return m, tea.Quit
			}

		case "up":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateBrowse && len(m.visible) > 0 {
				m.state = stateDetail
			}
			return m, nil

		case "esc":
			if m.state == stateDetail {
				m.state = stateBrowse
				return m, nil
			}
			return m, tea.Quit
		}

	case loadedMsg:
		m.err = msg.err
		m.reports = msg.reports
		m.applyFilter()
		return m, nil
	}

	if m.state == stateBrowse {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.reports == nil {
		return "Loading layouts..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Field Layouts"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		for i, idx := range m.visible {
			r := m.reports[idx]
			line := fmt.Sprintf("%s  %d fields, %d bytes", r.name, len(r.rows), r.size)
			if len(r.warnings) > 0 {
				line += " !"
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("type to filter • ↑/↓ select • enter inspect • esc quit"))

	case stateDetail:
		renderStyled(&b, m.reports[m.visible[m.selected]])
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
