package services

import (
	"context"
	"errors"
	"testing"

	"budget/internal/core"
	"budget/internal/session"
)

func TestRecordAcceptsPositiveAmounts(t *testing.T) {
	svc := NewTransactionService(nil)
	store := session.NewStore("s")
	ctx := context.Background()

	inputs := []Input{
		{Kind: "Income", Amount: "1000", Category: "Salary", Note: ""},
		{Kind: "Expense", Amount: "200", Category: "Food", Note: "lunch"},
		{Kind: "Expense", Amount: "50", Category: "Transport", Note: ""},
	}
	for i, in := range inputs {
		res, err := svc.Record(ctx, store, in)
		if err != nil {
			t.Fatalf("input %d: %v", i, err)
		}
		if !res.Accepted || res.Count != i+1 {
			t.Fatalf("input %d: unexpected result %+v", i, res)
		}
	}

	items := store.Snapshot()
	if len(items) != 3 || items[1].Note != "lunch" || items[2].Category != core.Transport {
		t.Fatalf("unexpected store content: %+v", items)
	}
	sum := core.Summarize(items)
	if core.FormatCurrency(sum.Balance.Cents) != "$750.00" {
		t.Fatalf("balance = %s", core.FormatCurrency(sum.Balance.Cents))
	}
	if m := svc.GetMetrics(); m.Accepted != 3 || m.Ignored != 0 {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestRecordIgnoresNonPositiveAmounts(t *testing.T) {
	svc := NewTransactionService(nil)
	store := session.NewStore("s")
	ctx := context.Background()

	for _, amount := range []string{"0", "", "-10", "0.001", "0,00"} {
		res, err := svc.Record(ctx, store, Input{Kind: "Expense", Amount: amount, Category: "Food"})
		if err != nil {
			t.Fatalf("amount %q: unexpected error %v", amount, err)
		}
		if res.Accepted || res.Reason != ReasonNonPositive {
			t.Fatalf("amount %q: expected ignore, got %+v", amount, res)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("store changed: %d", store.Len())
	}
	if m := svc.GetMetrics(); m.Ignored != 5 {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestRecordRejectsMalformedFields(t *testing.T) {
	svc := NewTransactionService(nil)
	store := session.NewStore("s")

	cases := []struct {
		in    Input
		field string
		want  error
	}{
		{Input{Kind: "Loan", Amount: "10", Category: "Food"}, "type", core.ErrInvalidKind},
		{Input{Kind: "Income", Amount: "10", Category: "Travel"}, "category", core.ErrInvalidCategory},
		{Input{Kind: "Income", Amount: "ten", Category: "Salary"}, "amount", core.ErrMalformedAmount},
	}
	for _, tc := range cases {
		_, err := svc.Record(context.Background(), store, tc.in)
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field || !errors.Is(err, tc.want) {
			t.Fatalf("input %+v: got %v", tc.in, err)
		}
		if !IsValidation(err) {
			t.Fatalf("IsValidation false for %v", err)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("store changed: %d", store.Len())
	}
}

func TestSanitizeNote(t *testing.T) {
	cases := map[string]string{
		"  lunch  ":       "lunch",
		"a\x00b\x07c":     "abc",
		"line1\nline2":    "line1\nline2",
		"":                "",
		"café \x7f!": "café !",
	}
	for in, want := range cases {
		if got := SanitizeNote(in); got != want {
			t.Fatalf("SanitizeNote(%q) = %q, want %q", in, got, want)
		}
	}
}
