// Package tui provides the Bubble Tea terminal UI for linkaudit, displaying
// live audit progress and a styled report.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lukemcguire/linkaudit/result"
)

// Runner runs one audit to completion.
type Runner interface {
	Run(ctx context.Context) (*result.Report, error)
}

// Model is the Bubble Tea model for the audit TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	runner     Runner
	spinner    spinner.Model
	progressCh <-chan result.Event

	phase       result.Phase
	target      string
	attempt     int
	maxAttempts int
	probed      int
	total       int
	cleared     int
	current     string

	quitting bool
	done     bool
	report   *result.Report
	err      error
	width    int
}

// NewModel creates a TUI model wired to the given audit runner and progress channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, runner Runner, progressCh <-chan result.Event) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		runner:     runner,
		spinner:    spin,
		progressCh: progressCh,
		phase:      result.PhaseCrawl,
	}
}

// Init starts the spinner, the audit, and the progress listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startAudit(), waitForProgress(m.progressCh))
}

// startAudit returns a tea.Cmd that runs the audit and sends AuditDoneMsg.
func (m Model) startAudit() tea.Cmd {
	return func() tea.Msg {
		rep, err := m.runner.Run(m.ctx)
		return AuditDoneMsg{Report: rep, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ProgressMsg:
		m.apply(msg.Event)
		return m, waitForProgress(m.progressCh)

	case progressClosedMsg:
		return m, nil

	case AuditDoneMsg:
		m.done = true
		m.report = msg.Report
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) apply(evt result.Event) {
	m.phase = evt.Phase
	switch evt.Phase {
	case result.PhaseCrawl:
		m.target = evt.URL
		m.attempt = evt.Attempt
		m.maxAttempts = evt.MaxAttempts
	case result.PhaseVerify:
		m.probed = evt.Done
		m.total = evt.Total
		m.current = evt.URL
		if evt.OK {
			m.cleared++
		}
	}
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.done {
		return RenderSummary(m.report)
	}
	if m.phase == result.PhaseVerify {
		return fmt.Sprintf("%s Verifying... probed %d/%d, reachable %d\n%s\n",
			m.spinner.View(), m.probed, m.total, m.cleared,
			dimStyle.Render("  "+m.current))
	}
	attempt := ""
	if m.attempt > 1 {
		attempt = fmt.Sprintf(" (attempt %d/%d)", m.attempt, m.maxAttempts)
	}
	return fmt.Sprintf("%s Crawling%s...\n%s\n",
		m.spinner.View(), attempt, dimStyle.Render("  "+m.target))
}

// HasErrors reports whether the audit classified any link as an error.
func (m Model) HasErrors() bool {
	return m.report != nil && m.report.HasError
}

// GetReport returns the audit report for output formatting.
func (m Model) GetReport() *result.Report {
	return m.report
}

// Err returns the error the audit finished with, if any.
func (m Model) Err() error {
	return m.err
}

// Quitting reports whether the user interrupted the audit.
func (m Model) Quitting() bool {
	return m.quitting
}
