// Package tui implements the interactive register: a product grid with a
// live cart on one tab, and history plus statistics on the other. The
// checkout flow follows the pos.Register state machine one keypress at a
// time.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tillworks/till/internal/cli"
	"github.com/tillworks/till/internal/insight"
	"github.com/tillworks/till/internal/ledger"
	"github.com/tillworks/till/internal/model"
	"github.com/tillworks/till/internal/pos"
)

// Tab selects which surface is visible.
type Tab int

const (
	// TabRegister is the product grid and cart.
	TabRegister Tab = iota
	// TabStats is history, totals, and the AI advisory.
	TabStats
)

// gridColumns is the width of the product grid.
const gridColumns = 5

// Config wires the TUI to the rest of the application.
type Config struct {
	Ledger   *ledger.Ledger
	Insight  *insight.Service
	Products []model.Product
}

// Model holds the full TUI state.
type Model struct {
	ledger      *ledger.Ledger
	insight     *insight.Service
	register    *pos.Register
	insightText string
	status      string
	expandedTx  string
	deleteArmed string
	products    []model.Product
	cashInput   textinput.Model
	spinner     spinner.Model
	monthFilter model.PaymentMethod
	tab         Tab
	cursor      int
	historyCur  int
	monthOffset int
	insightSeq  int
	width       int
	height      int
	fetching    bool
	quitting    bool
}

// NewModel creates the initial TUI model.
func NewModel(cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "amount received"
	input.CharLimit = 12
	input.Width = 16

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cli.InfoStyle

	return Model{
		register:  pos.NewRegister(),
		ledger:    cfg.Ledger,
		insight:   cfg.Insight,
		products:  cfg.Products,
		cashInput: input,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case insightMsg:
		// Last request wins: a stale response never overwrites a newer one.
		if msg.seq != m.insightSeq {
			return m, nil
		}
		m.fetching = false
		m.insightText = msg.text
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Cash entry owns the keyboard except for flow control keys.
	if m.register.State() == pos.StateAwaitingCash {
		return m.handleCashKey(msg)
	}

	switch msg.String() {
	case "q":
		if m.register.State() == pos.StateIdle || m.tab == TabStats {
			m.quitting = true
			return m, tea.Quit
		}
	case "tab":
		if m.tab == TabRegister {
			m.tab = TabStats
		} else {
			m.tab = TabRegister
		}
		m.status = ""
		return m, nil
	}

	if m.tab == TabStats {
		return m.handleStatsKey(msg)
	}
	return m.handleRegisterKey(msg)
}

func (m Model) handleRegisterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.register.State() {
	case pos.StateIdle, pos.StateBuilding:
		return m.handleCartKey(msg)
	case pos.StateSelectingPayment:
		return m.handlePaymentKey(msg)
	case pos.StateAwaitingConfirm:
		return m.handleConfirmKey(msg)
	case pos.StateCompleted:
		return m.handleCompletedKey(msg)
	case pos.StateAwaitingCash:
		return m.handleCashKey(msg)
	}
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor-gridColumns >= 0 {
			m.cursor -= gridColumns
		}
	case "down", "j":
		if m.cursor+gridColumns < len(m.products) {
			m.cursor += gridColumns
		}
	case "enter", " ":
		if m.cursor < len(m.products) {
			m.register.AddProduct(m.products[m.cursor])
			m.status = ""
		}
	case "-":
		if m.cursor < len(m.products) {
			m.register.AdjustQuantity(m.products[m.cursor].ID, -1)
		}
	case "c":
		m.register.ClearCart()
		m.status = ""
	case "p":
		if err := m.register.BeginCheckout(); err != nil {
			m.status = cli.WarningStyle.Render("add something to the cart first")
		} else {
			m.status = ""
		}
	}
	return m, nil
}

func (m Model) handlePaymentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var method model.PaymentMethod
	switch msg.String() {
	case "1":
		method = model.PaymentCash
	case "2":
		method = model.PaymentLeke
	case "3":
		method = model.PaymentMobile
	case "esc":
		m.register.Abort()
		return m, nil
	default:
		return m, nil
	}

	if err := m.register.SelectMethod(method); err != nil {
		m.status = cli.ErrorStyle.Render(err.Error())
		return m, nil
	}
	m.status = ""
	if method.IsCash() {
		m.cashInput.Reset()
		return m, m.cashInput.Focus()
	}
	return m, nil
}

func (m Model) handleCashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cashInput.Blur()
		m.register.Abort()
		m.status = ""
		return m, nil
	case "enter":
		if err := m.register.SubmitCash(m.cashInput.Value()); err != nil {
			m.status = cli.ErrorStyle.Render("insufficient amount received")
			return m, nil
		}
		m.cashInput.Blur()
		return m.confirmSale()
	}

	var cmd tea.Cmd
	m.cashInput, cmd = m.cashInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.confirmSale()
	case "esc":
		m.register.Abort()
		m.status = ""
	}
	return m, nil
}

func (m Model) confirmSale() (tea.Model, tea.Cmd) {
	if _, err := m.register.Confirm(); err != nil {
		m.status = cli.ErrorStyle.Render(err.Error())
		return m, nil
	}
	m.status = ""
	return m, nil
}

func (m Model) handleCompletedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "enter" {
		return m, nil
	}
	txn, err := m.register.Finalize()
	if err != nil {
		m.status = cli.ErrorStyle.Render(err.Error())
		return m, nil
	}

	// Persistence is synchronous: the keypress completes once the ledger
	// has been written.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.ledger.Record(ctx, *txn); err != nil {
		m.status = cli.ErrorStyle.Render("failed to save sale: " + err.Error())
		return m, nil
	}
	m.status = cli.SuccessStyle.Render("sale " + txn.ID + " recorded")
	return m, nil
}

func (m Model) handleStatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "0", "1", "2":
		m.monthOffset = int(msg.String()[0] - '0')
		m.historyCur = 0
	case "m":
		m.monthFilter = nextMethodFilter(m.monthFilter)
		m.historyCur = 0
	case "up", "k":
		if m.historyCur > 0 {
			m.historyCur--
		}
	case "down", "j":
		if m.historyCur < len(m.filteredTransactions())-1 {
			m.historyCur++
		}
	case "enter":
		filtered := m.filteredTransactions()
		if m.historyCur < len(filtered) {
			id := filtered[m.historyCur].ID
			if m.expandedTx == id {
				m.expandedTx = ""
			} else {
				m.expandedTx = id
			}
		}
	case "i":
		m.insightSeq++
		m.fetching = true
		return m, tea.Batch(m.spinner.Tick, m.fetchInsight(m.insightSeq))
	case "x":
		return m.handleDelete()
	}
	if msg.String() != "x" {
		m.deleteArmed = ""
	}
	return m, nil
}

// handleDelete removes the selected sale. Deletion is irreversible, so
// the first press only arms it and a second press on the same sale
// confirms.
func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	filtered := m.filteredTransactions()
	if m.historyCur >= len(filtered) {
		return m, nil
	}
	id := filtered[m.historyCur].ID

	if m.deleteArmed != id {
		m.deleteArmed = id
		m.status = cli.WarningStyle.Render("press x again to permanently delete " + id)
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.ledger.Delete(ctx, id); err != nil {
		m.status = cli.ErrorStyle.Render("failed to delete sale: " + err.Error())
	} else {
		m.status = cli.SuccessStyle.Render("deleted sale " + id)
		if m.expandedTx == id {
			m.expandedTx = ""
		}
		if m.historyCur > 0 {
			m.historyCur--
		}
	}
	m.deleteArmed = ""
	return m, nil
}

func (m Model) filteredTransactions() []model.Transaction {
	stats := ledger.Compute(m.ledger.Transactions(), time.Now(), m.monthOffset, m.monthFilter)
	return stats.Filtered
}

func nextMethodFilter(current model.PaymentMethod) model.PaymentMethod {
	switch current {
	case "":
		return model.PaymentCash
	case model.PaymentCash:
		return model.PaymentLeke
	case model.PaymentLeke:
		return model.PaymentMobile
	default:
		return ""
	}
}
