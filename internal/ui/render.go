// Package ui renders task listings for the terminal and runs the optional
// interactive browser.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todo-go/internal/task"
)

// ListMode selects the listing layout.
type ListMode int

const (
	// Long prints every field of every task.
	Long ListMode = iota
	// Short prints one line per task.
	Short
)

// Printer writes styled output. Colors are dropped when w is not a terminal.
type Printer struct {
	w         io.Writer
	label     lipgloss.Style
	errLabel  lipgloss.Style
	done      lipgloss.Style
	pending   lipgloss.Style
	indexText lipgloss.Style
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:         w,
		label:     r.NewStyle().Bold(true),
		errLabel:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		done:      r.NewStyle().Foreground(lipgloss.Color("10")),
		pending:   r.NewStyle().Foreground(lipgloss.Color("9")),
		indexText: r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

func (p *Printer) symbol(t task.Task) string {
	if t.Completed {
		return p.done.Render(t.Symbol())
	}
	return p.pending.Render(t.Symbol())
}

// Feedback prints the "<index> - <name> - <symbol>" line reported after a
// task is added, removed or toggled.
func (p *Printer) Feedback(t task.Task) error {
	_, err := fmt.Fprintf(p.w, "%s - %s - %s\n", p.indexText.Render(fmt.Sprint(t.Index)), t.Name, p.symbol(t))
	return err
}

// List prints every task in ascending index order.
func (p *Printer) List(store *task.Store, mode ListMode) error {
	var b strings.Builder
	for index, t := range store.List() {
		switch mode {
		case Short:
			fmt.Fprintf(&b, "%s %s - %s - %s\n", p.label.Render("Task :"),
				p.indexText.Render(fmt.Sprint(index)), t.Name, p.symbol(t))
		default:
			fmt.Fprintf(&b, "%s %s\n", p.label.Render("TASK NUMBER :"), p.indexText.Render(fmt.Sprint(index)))
			b.WriteString(t.String())
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Line prints msg followed by a newline.
func (p *Printer) Line(msg string) error {
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

// Error prints "<label> : <msg>" with the label in red.
func (p *Printer) Error(label, msg string) error {
	_, err := fmt.Fprintf(p.w, "%s : %s\n", p.errLabel.Render(label), msg)
	return err
}
