// Package ledger provides the transaction repository: the operations the UI
// consumes, layered over the storage accessor.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"flowallet/internal/core"
	"flowallet/internal/storage"
)

// Service wraps the store with validated, higher-level operations. It holds
// no cached copy of the table; every query re-reads storage, so a mutation is
// visible to the next read with no invalidation step.
type Service struct {
	store *storage.Store
}

func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

// Add validates raw user input and persists a new transaction. The date
// defaults to today when empty. On validation failure nothing is persisted
// and the error classifies via core.IsValidation.
func (s *Service) Add(ctx context.Context, amount, category, typ, date string) (core.Transaction, error) {
	amt, err := core.ParseAmount(amount)
	if err != nil {
		return core.Transaction{}, err
	}

	ttype, err := core.ParseType(typ)
	if err != nil {
		return core.Transaction{}, err
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return core.Transaction{}, core.ErrEmptyCategory
	}

	day := core.Today()
	if strings.TrimSpace(date) != "" {
		day, err = core.ParseDate(date)
		if err != nil {
			return core.Transaction{}, err
		}
	}

	t := core.Transaction{
		Date:     day,
		Type:     ttype,
		Category: category,
		Amount:   amt,
	}
	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction added",
		"id", id,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents,
		"component", "ledger",
		"operation", "add")
	return t, nil
}

// ListAll returns every transaction in insertion order. The order is part of
// the contract so the UI and tests agree.
func (s *Service) ListAll(ctx context.Context) ([]core.Transaction, error) {
	return s.store.Query(ctx, core.Filter{})
}

// Search applies the filter: provided fields combine with logical AND, text
// fields match case-insensitive substrings. An empty result is a valid
// answer, not an error. Cheap enough to run on every keystroke.
func (s *Service) Search(ctx context.Context, f core.Filter) ([]core.Transaction, error) {
	return s.store.Query(ctx, f)
}

// DeleteMany removes the given ids and returns the count actually removed so
// the UI can confirm. Idempotent: absent ids are skipped silently.
func (s *Service) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	n, err := s.store.Delete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return n, nil
}

// Totals returns income, expense and balance sums. All three are zero on an
// empty dataset.
func (s *Service) Totals(ctx context.Context) (core.Totals, error) {
	return s.store.SumByType(ctx)
}
