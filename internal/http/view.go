package http

import (
	"html/template"

	"budget/internal/chart"
	"budget/internal/core"
)

// Messages shown in place of empty sections.
const (
	MsgNoTransactions = "No transactions yet. Add one above!"
	MsgNoExpenses     = "No expenses yet!"
	MsgAdded          = "Transaction added!"
	MsgIgnored        = "Amount must be greater than zero; nothing was added."
)

// transactionRow is one table row. Index follows the default row labels of
// the table widget (0-based).
type transactionRow struct {
	Index    int
	Type     string
	Amount   string
	Category string
	Note     string
}

type legendEntry struct {
	Label  string
	Amount string
}

// summaryView is the data behind summary.html.
type summaryView struct {
	Empty          bool
	EmptyMessage   string
	Rows           []transactionRow
	Balance        string
	Delta          string
	DeltaClass     string
	HasExpenses    bool
	NoExpensesText string
	Chart          template.HTML
	ChartError     bool
	Legend         []legendEntry
}

type indexView struct {
	Kinds      []core.Kind
	Categories []core.Category
	Flash      string
	FlashClass string
	Chrome     Chrome
	Summary    summaryView
}

// buildSummaryView projects a snapshot into template data. Chart rendering
// failures degrade to the legend without failing the page.
func buildSummaryView(items []core.Transaction, opts chart.Options) (summaryView, core.Summary, error) {
	sum := core.Summarize(items)
	v := summaryView{
		Empty:          sum.Empty(),
		EmptyMessage:   MsgNoTransactions,
		NoExpensesText: MsgNoExpenses,
	}
	if v.Empty {
		return v, sum, nil
	}

	v.Rows = make([]transactionRow, 0, len(items))
	for i, t := range items {
		v.Rows = append(v.Rows, transactionRow{
			Index:    i,
			Type:     string(t.Kind),
			Amount:   core.FormatAmount(t.Amount),
			Category: string(t.Category),
			Note:     t.Note,
		})
	}

	v.Balance = core.FormatCurrency(sum.Balance.Cents)
	v.Delta = core.FormatDelta(sum.Income.Cents - sum.Expense.Cents)
	switch {
	case sum.Balance.Cents > 0:
		v.DeltaClass = "delta-positive"
	case sum.Balance.Cents < 0:
		v.DeltaClass = "delta-negative"
	default:
		v.DeltaClass = "delta-neutral"
	}

	v.HasExpenses = sum.HasExpenses()
	if !v.HasExpenses {
		return v, sum, nil
	}
	for _, ca := range sum.Distribution {
		v.Legend = append(v.Legend, legendEntry{
			Label:  chart.Label(ca),
			Amount: core.FormatCurrency(ca.Amount.Cents),
		})
	}
	svg, err := chart.Pie(sum.Distribution, opts)
	if err != nil {
		v.ChartError = true
		return v, sum, err
	}
	v.Chart = svg
	return v, sum, nil
}
