// Package pacer shows a spinner while a studio job runs, holds it for a
// minimum delay, then renders the job's result.
package pacer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alkime/studio/internal/tui/components/labeledspinner"
	"github.com/alkime/studio/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// ErrCancelled is returned when the user quits before the result is shown.
var ErrCancelled = errors.New("cancelled")

// Result is what a job produces for display.
type Result struct {
	Title    string
	Body     string
	Markdown bool
}

// Job does the work. It runs once, off the UI goroutine.
type Job func(ctx context.Context) (Result, error)

type jobDoneMsg struct {
	result Result
	err    error
}

type delayElapsedMsg struct{}

// Model is the pacing view. The result is shown only once the job has
// finished and the delay has elapsed, whichever comes last.
type Model struct {
	spinner  labeledspinner.Model
	keys     KeyMap
	ctx      context.Context
	job      Job
	delay    time.Duration
	render   func(string) string
	result   Result
	err      error
	rendered string

	jobDone   bool
	delayDone bool
	cancelled bool
}

// New creates a pacing model. title and subtitle label the spinner.
func New(ctx context.Context, title, subtitle string, delay time.Duration, job Job) Model {
	keys := DefaultKeyMap()

	return Model{
		spinner:   labeledspinner.New(title, subtitle, keys.ShortHelp()...),
		keys:      keys,
		ctx:       ctx,
		job:       job,
		delay:     delay,
		render:    markdownRenderer(80),
		delayDone: delay <= 0,
	}
}

// Init starts the spinner, the job and the delay timer.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Init(), m.runJob()}
	if !m.delayDone {
		cmds = append(cmds, tea.Tick(m.delay, func(time.Time) tea.Msg {
			return delayElapsedMsg{}
		}))
	}

	return tea.Batch(cmds...)
}

// Update handles job completion, the delay timer, and quit keys.
func (m Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && !m.Finished() {
			m.cancelled = true
			return m, tea.Quit
		}
		return m, nil
	case jobDoneMsg:
		m.jobDone = true
		m.result, m.err = msg.result, msg.err
		return m.maybeFinish()
	case delayElapsedMsg:
		m.delayDone = true
		return m.maybeFinish()
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(teaMsg)

	return m, cmd
}

// View renders the spinner until the result is ready.
func (m Model) View() string {
	if m.cancelled {
		return style.Warning.Render("Cancelled.") + "\n"
	}
	if !m.Finished() {
		return m.spinner.View()
	}
	if m.err != nil {
		return style.Error.Render("Error: "+m.err.Error()) + "\n"
	}

	var sb strings.Builder
	if m.result.Title != "" {
		sb.WriteString(style.Title.Render(m.result.Title))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.rendered)
	if !strings.HasSuffix(m.rendered, "\n") {
		sb.WriteString("\n")
	}

	return sb.String()
}

// Finished reports whether the result is being shown.
func (m Model) Finished() bool {
	return m.jobDone && m.delayDone
}

// Cancelled reports whether the user quit early.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Outcome returns the job's result once finished.
func (m Model) Outcome() (Result, error) {
	if m.cancelled {
		return Result{}, ErrCancelled
	}
	return m.result, m.err
}

func (m Model) maybeFinish() (tea.Model, tea.Cmd) {
	if !m.Finished() {
		return m, nil
	}

	m.rendered = m.result.Body
	if m.result.Markdown && m.err == nil {
		m.rendered = m.render(m.result.Body)
	}

	return m, tea.Quit
}

func (m Model) runJob() tea.Cmd {
	ctx, job := m.ctx, m.job
	return func() tea.Msg {
		result, err := job(ctx)
		return jobDoneMsg{result: result, err: err}
	}
}

// markdownRenderer falls back to the raw text if glamour cannot render it.
func markdownRenderer(width int) func(string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)

	return func(body string) string {
		if err != nil {
			return body
		}
		out, rerr := renderer.Render(body)
		if rerr != nil {
			return body
		}
		return out
	}
}
