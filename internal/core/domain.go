package core

import (
	"errors"
	"strings"
)

const (
	Income  Kind = "Income"
	Expense Kind = "Expense"
)

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Rent          Category = "Rent"
	Entertainment Category = "Entertainment"
	Salary        Category = "Salary"
	Other         Category = "Other"
)

type (
	// Kind tells income and expense entries apart.
	Kind string

	// Category is the fixed bucket a transaction is filed under.
	Category string

	// Money holds a non-negative amount in cents. No currency code is tracked.
	Money struct {
		Cents int64
	}

	// Transaction is one recorded income or expense event.
	// Values are immutable once appended to a session store.
	Transaction struct {
		Kind     Kind
		Amount   Money
		Category Category
		Note     string
	}
)

var (
	ErrInvalidKind     = errors.New("invalid transaction type")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrMalformedAmount = errors.New("malformed amount")
)

var (
	kinds      = []Kind{Income, Expense}
	categories = []Category{Food, Transport, Rent, Entertainment, Salary, Other}
)

// Kinds returns the transaction types in form order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Categories returns the categories in form order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseKind matches s against the known kinds, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range kinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", ErrInvalidKind
}

// ParseCategory matches s against the known categories, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

func (c Category) Valid() bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

// Positive reports whether the amount can be accepted into a store.
func (m Money) Positive() bool {
	return m.Cents > 0
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
