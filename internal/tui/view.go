package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tillworks/till/internal/cli"
	"github.com/tillworks/till/internal/ledger"
	"github.com/tillworks/till/internal/pos"
)

var (
	productStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1).
			Width(14)

	selectedProductStyle = productStyle.
				BorderForeground(cli.PrimaryColor).
				Bold(true)

	placeholderStyle = productStyle.
				Foreground(cli.SubtleColor)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.tab == TabStats {
		body = m.viewStats()
	} else {
		body = m.viewRegister()
	}

	sections := []string{m.viewTabs(), body}
	if m.status != "" {
		sections = append(sections, m.status)
	}
	sections = append(sections, m.viewHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) viewTabs() string {
	register := "  Register  "
	stats := "  History  "
	if m.tab == TabRegister {
		register = cli.TitleStyle.Render(register)
		stats = cli.SubtleStyle.Render(stats)
	} else {
		register = cli.SubtleStyle.Render(register)
		stats = cli.TitleStyle.Render(stats)
	}
	return register + stats
}

func (m Model) viewRegister() string {
	switch m.register.State() {
	case pos.StateSelectingPayment:
		return m.viewCartSummary() + "\n" + m.viewPaymentPicker()
	case pos.StateAwaitingCash:
		return m.viewCartSummary() + "\n" + m.viewCashEntry()
	case pos.StateAwaitingConfirm:
		return m.viewCartSummary() + "\n" + m.viewConfirm()
	case pos.StateCompleted:
		return m.viewCompleted()
	default:
		return m.viewGrid() + "\n" + m.viewCart()
	}
}

func (m Model) viewGrid() string {
	var rows []string
	for start := 0; start < len(m.products); start += gridColumns {
		end := start + gridColumns
		if end > len(m.products) {
			end = len(m.products)
		}
		var cells []string
		for i := start; i < end; i++ {
			p := m.products[i]
			style := productStyle
			if p.Placeholder() {
				style = placeholderStyle
			}
			if i == m.cursor {
				style = selectedProductStyle
			}
			label := p.Name
			if p.Placeholder() {
				label = "·"
			}
			cells = append(cells, style.Render(fmt.Sprintf("%s\n%s", label, cli.FormatAmount(p.Price))))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewCart() string {
	lines := m.register.Lines()
	if len(lines) == 0 {
		return cli.SubtleStyle.Render("cart is empty")
	}

	var b strings.Builder
	b.WriteString(cli.BoldStyle.Render("Cart") + "\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "  %-20s x%-3d %10s\n", l.Name, l.Quantity, cli.FormatAmount(l.Amount()))
	}
	fmt.Fprintf(&b, "  %-24s %10s", "subtotal", cli.BoldStyle.Render(cli.FormatAmount(m.register.Subtotal())))
	return b.String()
}

func (m Model) viewCartSummary() string {
	return fmt.Sprintf("%s  %s",
		cli.BoldStyle.Render("Total due:"),
		cli.FormatAmount(m.register.Subtotal()))
}

func (m Model) viewPaymentPicker() string {
	return strings.Join([]string{
		cli.TitleStyle.Render("Select payment"),
		"  1. cash",
		"  2. transfer (leke)",
		"  3. mobile wallet",
	}, "\n")
}

func (m Model) viewCashEntry() string {
	return cli.TitleStyle.Render("Cash received") + "\n" + m.cashInput.View()
}

func (m Model) viewConfirm() string {
	return fmt.Sprintf("%s via %s — press enter to confirm",
		cli.FormatAmount(m.register.Subtotal()),
		string(m.register.Method()))
}

func (m Model) viewCompleted() string {
	txn := m.register.Pending()
	if txn == nil {
		return ""
	}
	body := fmt.Sprintf("%s\n\ntotal    %s\nreceived %s\nchange   %s\n\npress enter to finish",
		cli.SuccessStyle.Render("✓ Payment accepted"),
		cli.FormatAmount(txn.Total),
		cli.FormatAmount(txn.Received),
		cli.BoldStyle.Render(cli.FormatAmount(txn.Change)))
	return cli.BoxStyle.Render(body)
}

func (m Model) viewStats() string {
	now := time.Now()
	stats := ledger.Compute(m.ledger.Transactions(), now, m.monthOffset, m.monthFilter)

	header := fmt.Sprintf("%s %s    %s %s",
		cli.SubtleStyle.Render("today"),
		cli.BoldStyle.Render(cli.FormatAmount(stats.Today)),
		cli.SubtleStyle.Render("this month"),
		cli.BoldStyle.Render(cli.FormatAmount(stats.Month)))

	var filterParts []string
	for _, label := range ledger.MonthLabels(now, 3) {
		name := label.Name
		if label.Offset == m.monthOffset {
			name = cli.TitleStyle.Render(name)
		} else {
			name = cli.SubtleStyle.Render(name)
		}
		filterParts = append(filterParts, fmt.Sprintf("[%d] %s", label.Offset, name))
	}
	methodName := "all methods"
	if m.monthFilter != "" {
		methodName = string(m.monthFilter)
	}
	filterLine := strings.Join(filterParts, "  ") + "   " +
		cli.SubtleStyle.Render("[m] ") + methodName +
		fmt.Sprintf("  (%s)", cli.FormatAmount(stats.FilteredTotal))

	var b strings.Builder
	b.WriteString(header + "\n" + filterLine + "\n\n")

	if len(stats.Filtered) == 0 {
		b.WriteString(cli.SubtleStyle.Render("no transactions in this month"))
	}
	for i, txn := range stats.Filtered {
		marker := "  "
		if i == m.historyCur {
			marker = cli.PromptStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s  %s  %-6s %10s\n",
			marker,
			txn.Time().Format("01-02 15:04"),
			txn.ID,
			string(txn.Method),
			cli.FormatAmount(txn.Total))
		if m.expandedTx == txn.ID {
			for _, item := range txn.Items {
				fmt.Fprintf(&b, "      %-20s x%-3d %10s\n", item.Name, item.Quantity, cli.FormatAmount(item.Amount()))
			}
			if txn.Method.IsCash() {
				fmt.Fprintf(&b, "      received %s, change %s\n",
					cli.FormatAmount(txn.Received), cli.FormatAmount(txn.Change))
			}
		}
	}

	b.WriteString("\n")
	if m.fetching {
		b.WriteString(m.spinner.View() + " analyzing recent sales...")
	} else if m.insightText != "" {
		b.WriteString(cli.BoxStyle.Render("💡 "+m.insightText))
	}
	return b.String()
}

func (m Model) viewHelp() string {
	var help string
	if m.tab == TabStats {
		help = "tab: register • 0-2: month • m: method • i: insight • enter: detail • x: delete • q: quit"
	} else {
		switch m.register.State() {
		case pos.StateIdle, pos.StateBuilding:
			help = "arrows: move • enter: add • -: remove • c: clear • p: pay • tab: history • q: quit"
		case pos.StateSelectingPayment:
			help = "1-3: method • esc: back"
		case pos.StateAwaitingCash:
			help = "enter: accept • esc: back"
		case pos.StateAwaitingConfirm:
			help = "enter: confirm • esc: back"
		case pos.StateCompleted:
			help = "enter: finish"
		}
	}
	return cli.SubtleStyle.Render(help)
}
