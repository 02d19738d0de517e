package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/session"
)

// Input is the raw content of one form submission.
type Input struct {
	Kind     string
	Amount   string
	Category string
	Note     string
}

// Reason explains why a submission was not recorded.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonNonPositive Reason = "non_positive_amount"
)

// Result describes the outcome of a well-formed submission.
type Result struct {
	Accepted    bool
	Reason      Reason
	Transaction core.Transaction
	// Count is the store size after the submission.
	Count int
}

// ValidationError reports a field that the rendered form can never produce.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransactionService applies the intake rules and appends accepted
// transactions to the caller's store.
type TransactionService struct {
	logger *log.StructuredLogger

	accepted atomic.Int64
	ignored  atomic.Int64
	invalid  atomic.Int64
}

func NewTransactionService(logger *log.Logger) *TransactionService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &TransactionService{logger: log.NewStructuredLogger(logger)}
}

// Record parses in and, when the amount is positive, appends it to store.
// A non-positive amount is not an error: the store is left untouched and the
// result says so. Malformed fields return a *ValidationError.
func (s *TransactionService) Record(ctx context.Context, store *session.Store, in Input) (Result, error) {
	t, err := parse(in)
	if err != nil {
		s.invalid.Add(1)
		return Result{}, err
	}

	if !t.Amount.Positive() {
		s.ignored.Add(1)
		s.logger.LogSubmissionIgnored(ctx, store.ID(), string(ReasonNonPositive), t.Amount.Cents)
		return Result{Reason: ReasonNonPositive, Transaction: t, Count: store.Len()}, nil
	}
	if err := t.Validate(); err != nil {
		s.invalid.Add(1)
		return Result{}, &ValidationError{Field: "transaction", Err: err}
	}

	n := store.Append(t)
	s.accepted.Add(1)
	s.logger.LogTransactionRecorded(ctx, store.ID(), string(t.Kind), string(t.Category), t.Amount.Cents, n)
	return Result{Accepted: true, Transaction: t, Count: n}, nil
}

func parse(in Input) (core.Transaction, error) {
	kind, err := core.ParseKind(in.Kind)
	if err != nil {
		return core.Transaction{}, &ValidationError{Field: "type", Err: err}
	}
	category, err := core.ParseCategory(in.Category)
	if err != nil {
		return core.Transaction{}, &ValidationError{Field: "category", Err: err}
	}
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Transaction{}, &ValidationError{Field: "amount", Err: err}
	}
	return core.Transaction{
		Kind:     kind,
		Amount:   amount,
		Category: category,
		Note:     SanitizeNote(in.Note),
	}, nil
}

// SanitizeNote trims the note and strips control characters other than tab,
// newline and carriage return.
func SanitizeNote(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		if r == 127 {
			return -1
		}
		return r
	}, s)
}

// IsValidation reports whether err came from a malformed submission.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Metrics counts submissions by outcome.
type Metrics struct {
	Accepted int64
	Ignored  int64
	Invalid  int64
}

func (s *TransactionService) GetMetrics() Metrics {
	return Metrics{
		Accepted: s.accepted.Load(),
		Ignored:  s.ignored.Load(),
		Invalid:  s.invalid.Load(),
	}
}
