// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     sectionviewer
// Description: Bubble Tea model for browsing the section tree of a file
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package sectionviewer shows the section tree of a test data file next to
// the source lines of the selected section.
package sectionviewer

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/tabwerk/internal/index"
	"github.com/msto63/tabwerk/internal/robot/parser"
	"github.com/msto63/tabwerk/pkg/core/logging"
)

// Config holds the configuration for the section viewer
type Config struct {
	Path   string
	Logger *logging.Logger
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{}
}

// Model is the main TUI model
type Model struct {
	// Dimensions
	width  int
	height int
	ready  bool

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// Data
	cfg     Config
	format  string
	lines   []string
	entries []index.Entry
	cursor  int
	loading bool
	err     error
}

// New creates a new section viewer model
func New(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return Model{
		cfg:     cfg,
		spinner: s,
		loading: true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadFile,
		tea.EnterAltScreen,
	)
}

// loadFile reads and sections the configured file
func (m Model) loadFile() tea.Msg {
	data, err := os.ReadFile(m.cfg.Path)
	if err != nil {
		return fileLoadedMsg{err: err}
	}
	p := parser.New(parser.Options{Logger: m.cfg.Logger})
	a, err := p.Analyze(m.cfg.Path, string(data))
	if err != nil {
		return fileLoadedMsg{err: err}
	}

	lines := make([]string, len(a.Lines))
	for i, l := range a.Lines {
		lines[i] = l.Text()
	}
	return fileLoadedMsg{
		format:  a.Format.String(),
		lines:   lines,
		entries: index.Flatten(a.Sections),
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		footerHeight := 4
		viewportHeight := msg.Height - headerHeight - footerHeight - 2
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !m.ready {
			m.viewport = viewport.New(m.sourceWidth(), viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = m.sourceWidth()
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case fileLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.format = msg.format
			m.lines = msg.lines
			m.entries = msg.entries
			if m.cursor >= len(m.entries) {
				m.cursor = len(m.entries) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
		}
		m.updateViewportContent()
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadFile)
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "g", "home":
		m.move(-len(m.entries))
	case "G", "end":
		m.move(len(m.entries))
	case "pgup":
		m.viewport.ViewUp()
	case "pgdown":
		m.viewport.ViewDown()
	}
	return m, nil
}

// move shifts the selection by delta and shows the selected section
func (m *Model) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	m.updateViewportContent()
}

// Selected returns the selected section, false when there is none
func (m Model) Selected() (index.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return index.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// updateViewportContent shows the source lines of the selected section
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.sourceContent())
	m.viewport.GotoTop()
}

func (m Model) sourceContent() string {
	e, ok := m.Selected()
	if !ok {
		return HelpDescStyle.Render("Keine Sections")
	}
	start, end := e.StartLine-1, e.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(m.lines) {
		end = len(m.lines)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		text := strings.ReplaceAll(m.lines[i], "\t", "    ")
		sb.WriteString(LineNumberStyle.Render(fmt.Sprintf("%4d ", i+1)))
		sb.WriteString(SourceStyle.Render(text))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m Model) treeWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) sourceWidth() int {
	w := m.width - m.treeWidth() - 8
	if w < 10 {
		w = 10
	}
	return w
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "\n  " + m.spinner.View() + " Lade ..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

// renderHeader renders the header with logo and file name
func (m Model) renderHeader() string {
	title := LogoStyle.Render(Logo) + "  " + FileStyle.Render(m.cfg.Path)
	return TitlePanelStyle.Width(m.width - 4).Render(title)
}

// renderBody renders the tree panel next to the source panel
func (m Model) renderBody() string {
	height := m.viewport.Height
	if m.err != nil {
		return TablePanelStyle.Width(m.width - 2).Height(height + 2).
			Render(ErrorStyle.Render("Fehler: " + m.err.Error()))
	}
	if m.loading {
		return TablePanelStyle.Width(m.width - 2).Height(height + 2).
			Render(m.spinner.View() + " Lade ...")
	}

	tree := TablePanelStyle.Width(m.treeWidth()).Height(height + 2).Render(m.renderTree(height + 2))
	source := SourcePanelStyle.Width(m.sourceWidth() + 2).Height(height + 2).Render(m.viewport.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, tree, source)
}

// renderTree renders the visible window of the section tree around the
// selection
func (m Model) renderTree(rows int) string {
	if len(m.entries) == 0 {
		return HelpDescStyle.Render("Keine Sections")
	}
	first := 0
	if m.cursor >= rows {
		first = m.cursor - rows + 1
	}
	last := first + rows
	if last > len(m.entries) {
		last = len(m.entries)
	}

	lines := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		lines = append(lines, m.renderEntry(m.entries[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(e index.Entry, selected bool) string {
	label := strings.Repeat("  ", e.Depth) + e.Type
	span := fmt.Sprintf(" %d-%d", e.StartLine, e.EndLine)
	if selected {
		return SelectedStyle.Render(label + span)
	}
	return TypeStyle(e.Type).Render(label) + RangeStyle.Render(span)
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("Format: %s", m.format)
	center := fmt.Sprintf("Sections: %d", len(m.entries))
	right := fmt.Sprintf("Zeilen: %d", len(m.lines))
	if e, ok := m.Selected(); ok {
		right = fmt.Sprintf("%s  %d/%d", right, m.cursor+1, len(m.entries))
		center = fmt.Sprintf("%s  [%s]", center, e.Type)
	}

	width := m.width - 4
	padding := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	return StatusBarStyle.Width(m.width - 2).Render(
		left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right,
	)
}

// renderHelpBar renders the help bar
func (m Model) renderHelpBar() string {
	items := []string{
		RenderKeyHint("↑/↓", "Auswahl"),
		RenderKeyHint("g/G", "Anfang/Ende"),
		RenderKeyHint("PgUp/PgDn", "Quelltext"),
		RenderKeyHint("r", "Neu laden"),
		RenderKeyHint("q", "Beenden"),
	}
	return "  " + strings.Join(items, "  │  ")
}

// Run starts the section viewer TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
