package pacer

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Run executes job behind the pacing view and returns its result.
func Run(ctx context.Context, title, subtitle string, delay time.Duration, job Job, opts ...tea.ProgramOption) (Result, error) {
	p := tea.NewProgram(New(ctx, title, subtitle, delay, job), append(opts, tea.WithContext(ctx))...)

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run TUI: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type %T", final)
	}

	return m.Outcome()
}
