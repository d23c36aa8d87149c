// Package labeledspinner renders the "working" view shared by studio
// commands: a spinner beside the job title, a subtitle, and a footer with
// the elapsed time and the active key bindings.
package labeledspinner

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/studio/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const helpSeparator = " • "

// Model displays a spinner while a studio job runs.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	Keys     []key.Binding

	ticks int
}

// New creates a spinner labelled with title and subtitle. The footer lists
// each enabled binding as "keys action".
func New(title, subtitle string, keys ...key.Binding) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205"))),
	)

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Keys:     keys,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// Update advances the spinner and the elapsed counter on each tick.
func (m Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	tickMsg, ok := teaMsg.(spinner.TickMsg)
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	m.Spinner, cmd = m.Spinner.Update(tickMsg)
	m.ticks++

	return m, cmd
}

// Elapsed approximates how long the spinner has been running, counted in
// spinner frames.
func (m Model) Elapsed() time.Duration {
	return time.Duration(m.ticks) * m.Spinner.Spinner.FPS
}

// Help renders the enabled bindings, e.g. "q/esc cancel".
func (m Model) Help() string {
	parts := make([]string, 0, len(m.Keys))
	for _, b := range m.Keys {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, helpSeparator)
}

// View renders the spinner, labels and footer. The subtitle line is omitted
// when empty, and the elapsed time appears once a full second has passed.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Title.Render(m.Title))
	sb.WriteString("\n\n")

	if m.Subtitle != "" {
		sb.WriteString(style.Subtitle.Render(m.Subtitle))
		sb.WriteString("\n\n")
	}

	footer := m.Help()
	if elapsed := m.Elapsed().Truncate(time.Second); elapsed >= time.Second {
		footer = strings.TrimPrefix(footer+helpSeparator+fmt.Sprintf("%s elapsed", elapsed), helpSeparator)
	}
	sb.WriteString(style.Help.Render(footer))

	return sb.String()
}
