package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukemcguire/linkaudit/result"
)

// ProgressMsg wraps one progress event from the running audit.
type ProgressMsg struct {
	Event result.Event
}

// AuditDoneMsg signals the audit has completed.
type AuditDoneMsg struct {
	Report *result.Report
	Err    error
}

// progressClosedMsg is sent once the progress channel is closed.
type progressClosedMsg struct{}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel. The audit result itself always arrives through startAudit.
func waitForProgress(ch <-chan result.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return progressClosedMsg{}
		}
		return ProgressMsg{Event: evt}
	}
}
