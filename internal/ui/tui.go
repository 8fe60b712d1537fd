package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-go/internal/task"
)

// ErrNoTTY is returned when the browser is started without a terminal.
var ErrNoTTY = errors.New("tui requires a TTY")

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	input     io.Reader
	output    io.Writer
	altScreen bool
}

// WithInput reads key presses from r instead of stdin.
func WithInput(r io.Reader) TUIOption {
	return func(c *tuiConfig) {
		c.input = r
	}
}

// WithOutput renders to w instead of stdout.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// RunTUI browses and edits store interactively. It reports whether the store
// was changed and the user asked to keep the changes.
func RunTUI(ctx context.Context, store *task.Store, dataPath string, opts ...TUIOption) (bool, error) {
	c := &tuiConfig{
		input:     os.Stdin,
		output:    os.Stdout,
		altScreen: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.output) {
		return false, ErrNoTTY
	}

	model := newTUIModel(store, dataPath)
	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(c.input),
		tea.WithOutput(c.output),
	}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	finalModel, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(*tuiModel); ok {
		return m.changed(), nil
	}
	return false, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type tuiModel struct {
	store    *task.Store
	dataPath string
	indices  []int
	cursor   int
	dirty    bool
	discard  bool
	showHelp bool
	status   string
}

func newTUIModel(store *task.Store, dataPath string) *tuiModel {
	m := &tuiModel{store: store, dataPath: dataPath}
	m.refresh()
	return m
}

func (m *tuiModel) changed() bool {
	return m.dirty && !m.discard
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "ctrl+c":
		m.discard = true
		return m, tea.Quit
	case "h", "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.indices)-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		index, ok := m.selected()
		if !ok {
			return m, nil
		}
		t, err := m.store.Toggle(index)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.dirty = true
		m.status = fmt.Sprintf("toggled %d - %s", t.Index, t.Short())
	case "d", "delete":
		index, ok := m.selected()
		if !ok {
			return m, nil
		}
		t, err := m.store.Remove(index)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.dirty = true
		m.status = fmt.Sprintf("removed %d - %s", t.Index, t.Short())
		m.refresh()
	}
	return m, nil
}

func (m *tuiModel) selected() (int, bool) {
	if len(m.indices) == 0 {
		return 0, false
	}
	return m.indices[m.cursor], true
}

// refresh rebuilds the row list after the store changed shape.
func (m *tuiModel) refresh() {
	m.indices = m.indices[:0]
	for index := range m.store.List() {
		m.indices = append(m.indices, index)
	}
	if m.cursor >= len(m.indices) {
		m.cursor = max(len(m.indices)-1, 0)
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.store.Len())

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m)
		return b.String()
	}

	if len(m.indices) == 0 {
		b.WriteString("  No tasks.\n\n")
	}
	for row, index := range m.indices {
		t, err := m.store.Get(index)
		if err != nil {
			continue
		}
		b.WriteString(formatRow(t, row == m.cursor))
		b.WriteString("\n")
	}
	if len(m.indices) > 0 {
		if t, err := m.store.Get(m.indices[m.cursor]); err == nil && t.Description != "" {
			b.WriteString("\n  " + t.Description + "\n")
		}
		b.WriteString("\n")
	}
	writeFooter(&b, m)
	return b.String()
}

func writeTitle(b *strings.Builder, count int) {
	title := fmt.Sprintf("Todo (%d)", count)
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up, k          Move up\n")
	b.WriteString("  down, j        Move down\n")
	b.WriteString("  space, enter   Toggle completed\n")
	b.WriteString("  d, delete      Remove task\n")
	b.WriteString("  h, ?           Toggle this help screen\n")
	b.WriteString("  q              Save and quit\n")
	b.WriteString("  ctrl+c         Quit without saving\n\n")
}

func writeFooter(b *strings.Builder, m *tuiModel) {
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("%s | h for help | q to save and quit", m.dataPath)) + "\n")
}

func formatRow(t task.Task, selected bool) string {
	symbol := t.Symbol()
	if t.Completed {
		symbol = doneStyle.Render(symbol)
	}
	line := fmt.Sprintf("%d - %s", t.Index, t.Name)
	if selected {
		return "> " + selectedStyle.Render(line) + " " + symbol
	}
	return "  " + line + " " + symbol
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
