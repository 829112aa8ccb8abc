package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// insightMsg carries an advisory response. seq ties it to the request
// that produced it so stale responses can be dropped.
type insightMsg struct {
	text string
	seq  int
}

// fetchInsight requests an advisory for the current ledger. The rest of
// the UI stays responsive while the request is in flight.
func (m Model) fetchInsight(seq int) tea.Cmd {
	transactions := m.ledger.Transactions()
	service := m.insight
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()

		return insightMsg{seq: seq, text: service.Summarize(ctx, transactions)}
	}
}
