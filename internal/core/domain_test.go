package core

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in  string
		out Kind
		ok  bool
	}{
		{"Income", Income, true},
		{"expense", Expense, true},
		{" Expense ", Expense, true},
		{"", "", false},
		{"Refund", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.out, got, err)
			}
		} else if !errors.Is(err, ErrInvalidKind) {
			t.Fatalf("%q expected ErrInvalidKind, got %v", tc.in, err)
		}
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Fatalf("%q expected ok, got %q (err=%v)", c, got, err)
		}
	}
	if _, err := ParseCategory("Groceries"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestChoicesOrder(t *testing.T) {
	k := Kinds()
	if len(k) != 2 || k[0] != Income || k[1] != Expense {
		t.Fatalf("unexpected kinds: %v", k)
	}
	c := Categories()
	want := []Category{Food, Transport, Rent, Entertainment, Salary, Other}
	if len(c) != len(want) {
		t.Fatalf("unexpected categories: %v", c)
	}
	for i := range want {
		if c[i] != want[i] {
			t.Fatalf("category %d = %q, want %q", i, c[i], want[i])
		}
	}
	// Returned slices are copies.
	c[0] = "Mutated"
	if Categories()[0] != Food {
		t.Fatalf("Categories exposes internal slice")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Kind: Expense, Amount: Money{Cents: 100}, Category: Food, Note: ""}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		tx   Transaction
		want error
	}{
		{Transaction{Kind: "x", Amount: Money{Cents: 1}, Category: Food}, ErrInvalidKind},
		{Transaction{Kind: Income, Amount: Money{Cents: 1}, Category: "x"}, ErrInvalidCategory},
		{Transaction{Kind: Income, Amount: Money{Cents: 0}, Category: Salary}, ErrInvalidAmount},
		{Transaction{Kind: Income, Amount: Money{Cents: -5}, Category: Salary}, ErrInvalidAmount},
	}
	for i, tc := range bads {
		if err := tc.tx.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}
