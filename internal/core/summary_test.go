package core

import (
	"testing"
)

func tx(k Kind, cents int64, c Category, note string) Transaction {
	return Transaction{Kind: k, Amount: Money{Cents: cents}, Category: c, Note: note}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if !s.Empty() || s.HasExpenses() {
		t.Fatalf("expected empty summary, got %+v", s)
	}
	if s.Balance.Cents != 0 {
		t.Fatalf("expected zero balance, got %d", s.Balance.Cents)
	}
}

func TestSummarizeMixed(t *testing.T) {
	s := Summarize([]Transaction{
		tx(Income, 100000, Salary, ""),
		tx(Expense, 20000, Food, "lunch"),
		tx(Expense, 5000, Transport, ""),
	})
	if s.Count != 3 {
		t.Fatalf("count = %d", s.Count)
	}
	if s.Balance.Cents != 75000 {
		t.Fatalf("balance = %d, want 75000", s.Balance.Cents)
	}
	if got := FormatCurrency(s.Balance.Cents); got != "$750.00" {
		t.Fatalf("formatted balance = %q", got)
	}
	if len(s.Distribution) != 2 {
		t.Fatalf("distribution = %+v", s.Distribution)
	}
	if s.Distribution[0].Category != Food || s.Distribution[0].Amount.Cents != 20000 {
		t.Fatalf("first slice = %+v", s.Distribution[0])
	}
	if s.Distribution[1].Category != Transport || s.Distribution[1].Amount.Cents != 5000 {
		t.Fatalf("second slice = %+v", s.Distribution[1])
	}
	if got := s.Distribution[0].Share.StringFixed(2); got != "0.80" {
		t.Fatalf("food share = %s", got)
	}
}

func TestSummarizeIncomeOnly(t *testing.T) {
	s := Summarize([]Transaction{
		tx(Income, 50000, Salary, ""),
		tx(Income, 30000, Other, ""),
	})
	if s.Empty() {
		t.Fatalf("summary should not be empty")
	}
	if s.HasExpenses() {
		t.Fatalf("expected no distribution, got %+v", s.Distribution)
	}
	if s.Balance.Cents != 80000 {
		t.Fatalf("balance = %d, want 80000", s.Balance.Cents)
	}
}

func TestSummarizeInvariants(t *testing.T) {
	items := []Transaction{
		tx(Expense, 1999, Food, ""),
		tx(Income, 250000, Salary, ""),
		tx(Expense, 1, Food, ""),
		tx(Expense, 120000, Rent, ""),
		tx(Expense, 3333, Entertainment, ""),
		tx(Income, 1, Other, ""),
	}
	s := Summarize(items)

	var income, expense int64
	for _, it := range items {
		if it.Kind == Income {
			income += it.Amount.Cents
		} else {
			expense += it.Amount.Cents
		}
	}
	if s.Balance.Cents != income-expense {
		t.Fatalf("balance = %d, want %d", s.Balance.Cents, income-expense)
	}

	var sum int64
	seen := map[Category]bool{}
	for _, ca := range s.Distribution {
		if ca.Amount.Cents <= 0 {
			t.Fatalf("zero slice for %s", ca.Category)
		}
		seen[ca.Category] = true
		sum += ca.Amount.Cents
	}
	if sum != s.Expense.Cents || sum != expense {
		t.Fatalf("distribution sums to %d, expense total %d", sum, s.Expense.Cents)
	}
	for _, c := range []Category{Transport, Salary, Other} {
		if seen[c] {
			t.Fatalf("category %s has no expenses but appears", c)
		}
	}
	for i := 1; i < len(s.Distribution); i++ {
		if s.Distribution[i-1].Category >= s.Distribution[i].Category {
			t.Fatalf("distribution not sorted: %+v", s.Distribution)
		}
	}
}

func TestSummarizeIsPure(t *testing.T) {
	items := []Transaction{tx(Expense, 500, Food, "")}
	a := Summarize(items)
	items = append(items, tx(Expense, 700, Food, ""))
	b := Summarize(items)
	if a.Expense.Cents != 500 || b.Expense.Cents != 1200 {
		t.Fatalf("unexpected totals: a=%d b=%d", a.Expense.Cents, b.Expense.Cents)
	}
}
