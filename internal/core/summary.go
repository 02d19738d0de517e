package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents the expense total of one category.
type CategoryAmount struct {
	Category Category
	Amount   Money
	// Share is Amount over the total expense, in [0, 1].
	Share decimal.Decimal
}

// Summary is the read-only projection rendered under the form.
type Summary struct {
	Count        int
	Income       Money
	Expense      Money
	Balance      Money // Income - Expense, may be negative
	Distribution []CategoryAmount
}

// Summarize recomputes every derived view from the full list of transactions.
// It keeps no state between calls.
func Summarize(items []Transaction) Summary {
	s := Summary{Count: len(items)}
	byCategory := make(map[Category]int64)
	for _, t := range items {
		switch t.Kind {
		case Income:
			s.Income.Cents += t.Amount.Cents
		case Expense:
			s.Expense.Cents += t.Amount.Cents
			byCategory[t.Category] += t.Amount.Cents
		}
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents

	total := decimal.NewFromInt(s.Expense.Cents)
	for c, cents := range byCategory {
		if cents <= 0 {
			continue
		}
		s.Distribution = append(s.Distribution, CategoryAmount{
			Category: c,
			Amount:   Money{Cents: cents},
			Share:    decimal.NewFromInt(cents).Div(total),
		})
	}
	// Group-by key order.
	sort.Slice(s.Distribution, func(i, j int) bool {
		return s.Distribution[i].Category < s.Distribution[j].Category
	})
	return s
}

// Empty reports whether there is nothing to show yet.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// HasExpenses reports whether the distribution can be charted.
func (s Summary) HasExpenses() bool {
	return len(s.Distribution) > 0
}
