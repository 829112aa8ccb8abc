package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillworks/till/internal/catalog"
	"github.com/tillworks/till/internal/insight"
	"github.com/tillworks/till/internal/ledger"
	"github.com/tillworks/till/internal/model"
	"github.com/tillworks/till/internal/pos"
)

// memStore is an in-memory ledger store for TUI tests.
type memStore struct {
	saved []model.Transaction
}

func (s *memStore) Load(_ context.Context) ([]model.Transaction, error) {
	return append([]model.Transaction{}, s.saved...), nil
}

func (s *memStore) Save(_ context.Context, transactions []model.Transaction) error {
	s.saved = append([]model.Transaction{}, transactions...)
	return nil
}

func (s *memStore) Close() error { return nil }

func newTestModel(t *testing.T) (Model, *memStore) {
	t.Helper()
	store := &memStore{}
	l, err := ledger.Open(context.Background(), store)
	require.NoError(t, err)

	return NewModel(Config{
		Ledger:   l,
		Insight:  insight.NewService(insight.Config{}),
		Products: catalog.Default(),
	}), store
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_CashSaleFlow(t *testing.T) {
	m, store := newTestModel(t)

	// Two Americanos, then start checkout and pick cash.
	m = press(t, m, "enter", "enter", "p", "1")
	assert.Equal(t, pos.StateAwaitingCash, m.register.State())

	// Type the received amount and accept it.
	m = press(t, m, "2", "0", "0", "enter")
	require.Equal(t, pos.StateCompleted, m.register.State())
	pending := m.register.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, int64(130), pending.Total)
	assert.Equal(t, int64(200), pending.Received)
	assert.Equal(t, int64(70), pending.Change)

	// Finishing records exactly one sale and resets the register.
	m = press(t, m, "enter")
	assert.Equal(t, pos.StateIdle, m.register.State())
	require.Len(t, store.saved, 1)
	assert.Equal(t, int64(130), store.saved[0].Total)

	// A stray second enter must not duplicate the record.
	m = press(t, m, "enter")
	assert.Len(t, store.saved, 1)
	_ = m
}

func TestModel_InsufficientCashStaysInEntry(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, "enter", "enter", "p", "1", "1", "0", "0", "enter")
	assert.Equal(t, pos.StateAwaitingCash, m.register.State())
	assert.Empty(t, store.saved)
	require.Len(t, m.register.Lines(), 1)
	assert.Equal(t, 2, m.register.Lines()[0].Quantity)
}

func TestModel_EscAbortsCheckoutKeepingCart(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "enter", "p", "2")
	assert.Equal(t, pos.StateAwaitingConfirm, m.register.State())

	m = press(t, m, "esc")
	assert.Equal(t, pos.StateBuilding, m.register.State())
	assert.Len(t, m.register.Lines(), 1)
}

func TestModel_PlaceholderSlotNotSellable(t *testing.T) {
	m, _ := newTestModel(t)

	// Move onto a placeholder slot and try to add it.
	m = press(t, m, "l", "l", "enter")
	assert.Empty(t, m.register.Lines())
	assert.Equal(t, pos.StateIdle, m.register.State())
}

func TestModel_StaleInsightDropped(t *testing.T) {
	m, _ := newTestModel(t)
	m.insightSeq = 2
	m.fetching = true

	updated, _ := m.Update(insightMsg{seq: 1, text: "stale"})
	m = updated.(Model)
	assert.True(t, m.fetching)
	assert.Empty(t, m.insightText)

	updated, _ = m.Update(insightMsg{seq: 2, text: "fresh"})
	m = updated.(Model)
	assert.False(t, m.fetching)
	assert.Equal(t, "fresh", m.insightText)
}

func TestModel_DeleteRequiresSecondPress(t *testing.T) {
	m, store := newTestModel(t)

	// Record one sale, then switch to the history tab.
	m = press(t, m, "enter", "p", "2", "enter", "enter", "tab")
	require.Len(t, store.saved, 1)
	id := store.saved[0].ID

	// Expand the sale, arm the delete, and confirm it.
	m = press(t, m, "enter")
	assert.Equal(t, id, m.expandedTx)

	m = press(t, m, "x")
	require.Len(t, store.saved, 1, "first press only arms the delete")

	m = press(t, m, "x")
	assert.Empty(t, store.saved)
	assert.Empty(t, m.expandedTx, "deleting the expanded sale clears the selection")
}

func TestModel_DeleteDisarmedByOtherKey(t *testing.T) {
	m, store := newTestModel(t)
	m = press(t, m, "enter", "p", "3", "enter", "enter", "tab")
	require.Len(t, store.saved, 1)

	m = press(t, m, "x", "0", "x")
	assert.Len(t, store.saved, 1, "an intervening key must re-require confirmation")
}

func TestModel_ViewRendersCartAndTotals(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter")

	view := m.View()
	assert.Contains(t, view, "Americano")
	assert.Contains(t, view, "$65")

	m = press(t, m, "tab")
	view = m.View()
	assert.Contains(t, view, "today")
}
