// Package render formats dashboard, report and trend views for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"budgetmaster/internal/analytics"
	"budgetmaster/internal/core"
)

const barWidth = 20

type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Income  lipgloss.Style
	Expense lipgloss.Style
	Muted   lipgloss.Style
	Panel   lipgloss.Style
	Bands   map[analytics.Band]lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Income:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		Expense: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Bands: map[analytics.Band]lipgloss.Style{
			analytics.BandOK:       lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
			analytics.BandWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD54A")),
			analytics.BandDanger:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")),
			analytics.BandExceeded: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		},
	}
}

// Renderer turns analytics views into styled text.
type Renderer struct {
	Styles Styles
}

func New() *Renderer {
	return &Renderer{Styles: DefaultStyles()}
}

// Dashboard renders the current-month panels.
func (r *Renderer) Dashboard(d analytics.Dashboard) string {
	header := r.Styles.Title.Render(fmt.Sprintf("Dashboard %04d-%02d", d.Year, d.Month))

	overview := r.panel("Overview",
		r.row("Income", r.Styles.Income.Render(d.Totals.Income.String())),
		r.row("Expenses", r.Styles.Expense.Render(d.Totals.Expenses.String())),
		r.row("Net", r.signed(d.Totals.Net)),
		r.row("Savings rate", fmt.Sprintf("%.1f%%", d.Totals.SavingsRate)),
	)

	budgets := r.panel("Budgets",
		r.row("Limit", d.Budgets.TotalLimit.String()),
		r.row("Spent", d.Budgets.TotalSpent.String()),
		r.row("Remaining", r.signed(d.Budgets.Remaining)),
		r.bar(d.Budgets.PercentUsed, d.Budgets.Band),
	)

	goals := r.panel("Goals",
		r.row("Saved", d.Goals.TotalCurrent.String()),
		r.row("Target", d.Goals.TotalTarget.String()),
		r.row("Achieved", fmt.Sprintf("%.1f%%", d.Goals.PercentAchieved)),
	)

	recurring := r.panel("Recurring / month",
		r.row("Income", r.Styles.Income.Render(d.Recurring.MonthlyIncome.String())),
		r.row("Expenses", r.Styles.Expense.Render(d.Recurring.MonthlyExpenses.String())),
		r.row("Net", r.signed(d.Recurring.MonthlyNet)),
	)

	debtLines := []string{r.row("Total debt", d.TotalDebt.String())}
	for _, debt := range d.NextPayments {
		debtLines = append(debtLines, r.row(debt.Name, fmt.Sprintf("%s due %s", debt.MinimumPayment, debt.DueDate)))
	}
	debts := r.panel("Debts", debtLines...)

	recent := []string{}
	for _, tx := range d.Recent {
		recent = append(recent, r.transaction(tx))
	}
	if len(recent) == 0 {
		recent = append(recent, r.Styles.Muted.Render("no transactions this month"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, overview, budgets, goals),
		lipgloss.JoinHorizontal(lipgloss.Top, recurring, debts),
		r.panel("Recent transactions", recent...),
	)
}

func (r *Renderer) Report(rep analytics.Report) string {
	allTime := r.panel("All time",
		r.row("Income", r.Styles.Income.Render(rep.AllTime.Income.String())),
		r.row("Expenses", r.Styles.Expense.Render(rep.AllTime.Expenses.String())),
		r.row("Net", r.signed(rep.AllTime.Net)),
		r.row("Savings rate", fmt.Sprintf("%.1f%%", rep.AllTime.SavingsRate)),
	)

	categories := []string{}
	for _, c := range rep.Categories {
		categories = append(categories, r.row(c.Name, fmt.Sprintf("%s  %5.1f%%", c.Amount, c.Share)))
	}
	if len(categories) == 0 {
		categories = append(categories, r.Styles.Muted.Render("no expenses this month"))
	}

	budgets := []string{}
	for _, b := range rep.Budgets {
		p := analytics.PercentOf(b.Spent, b.Budgeted)
		budgets = append(budgets, r.row(b.Category, fmt.Sprintf("%s / %s", b.Spent, b.Budgeted)), r.bar(p, analytics.BandOf(b.Spent, b.Budgeted)))
	}
	if len(budgets) == 0 {
		budgets = append(budgets, r.Styles.Muted.Render("no budgets"))
	}

	top := []string{}
	for _, tx := range rep.TopExpenses {
		top = append(top, r.transaction(tx))
	}
	if len(top) == 0 {
		top = append(top, r.Styles.Muted.Render("no expenses this month"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.Styles.Title.Render("Report"),
		r.Trend(rep.Trend),
		lipgloss.JoinHorizontal(lipgloss.Top, allTime, r.panel("Categories", categories...)),
		r.panel("Budget vs actual", budgets...),
		r.panel("Top expenses", top...),
	)
}

// Trend renders one line per month, oldest first.
func (r *Renderer) Trend(series []core.MonthSummary) string {
	lines := make([]string, 0, len(series)+1)
	lines = append(lines, r.Styles.Label.Render(fmt.Sprintf("%-8s %12s %12s %12s", "Month", "Income", "Expenses", "Net")))
	for _, m := range series {
		lines = append(lines, fmt.Sprintf("%-8s %12s %12s %12s",
			fmt.Sprintf("%s %02d", m.Label, m.Year%100),
			m.Income, m.Expenses, m.Net))
	}
	return r.panel("Trend", lines...)
}

func (r *Renderer) panel(title string, lines ...string) string {
	body := append([]string{r.Styles.Title.Render(title)}, lines...)
	return r.Styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (r *Renderer) row(label, value string) string {
	return r.Styles.Label.Render(fmt.Sprintf("%-14s", label)) + " " + value
}

func (r *Renderer) signed(m core.Money) string {
	if m.IsNegative() {
		return r.Styles.Expense.Render(m.String())
	}
	return r.Styles.Income.Render(m.String())
}

func (r *Renderer) transaction(tx core.Transaction) string {
	amount := r.signed(tx.Amount)
	return fmt.Sprintf("%s  %-24s %-14s %s",
		r.Styles.Muted.Render(tx.Date.Format("2006-01-02")),
		truncate(tx.Description, 24), truncate(tx.Category, 14), amount)
}

// bar draws percent of barWidth cells, capped at full.
func (r *Renderer) bar(percent float64, band analytics.Band) string {
	filled := int(percent / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	style, ok := r.Styles.Bands[band]
	if !ok {
		style = r.Styles.Muted
	}
	return style.Render(strings.Repeat("█", filled)) +
		r.Styles.Muted.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %5.1f%%", percent)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
