package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"flowallet/internal/core"

	_ "modernc.org/sqlite"
)

// Store owns the on-disk representation of transactions. Everything above
// this layer reads through it; no caller holds a copy of the table. Rows are
// mapped into core.Transaction at this boundary, never passed up untyped.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the database file and brings the schema up
// to date. Idempotent across application launches.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One local writer, one connection: statements stay serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Insert persists a new transaction and returns its assigned id. IDs come
// from AUTOINCREMENT and are never reused, even after deletion.
func (s *Store) Insert(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (date, type, category, amount_cents) VALUES (?, ?, ?, ?)`,
		t.Date.String(), string(t.Type), t.Category, t.Amount.Cents)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents,
		"date", t.Date.String())
	return id, nil
}

// Query returns transactions matching the filter in insertion order. Unset
// filter fields impose no constraint; category and date match as
// case-insensitive substrings.
func (s *Store) Query(ctx context.Context, f core.Filter) ([]core.Transaction, error) {
	q := `SELECT id, date, type, category, amount_cents FROM transactions WHERE 1=1`
	var args []any

	if f.Type != nil {
		q += ` AND type = ?`
		args = append(args, string(*f.Type))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		q += ` AND instr(lower(category), lower(?)) > 0`
		args = append(args, c)
	}
	if d := strings.TrimSpace(f.Date); d != "" {
		q += ` AND instr(date, ?) > 0`
		args = append(args, d)
	}
	q += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Delete removes every row whose id is in ids and returns how many rows were
// actually removed. Absent ids are a no-op, so repeated calls are idempotent.
func (s *Store) Delete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted rows: %w", err)
	}

	slog.InfoContext(ctx, "Transactions deleted", "requested", len(ids), "removed", n)
	return n, nil
}

// SumByType computes income and expense totals in one pass. An empty table
// yields zero totals, not an error.
func (s *Store) SumByType(ctx context.Context) (core.Totals, error) {
	var income, expense int64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN type = ? THEN amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = ? THEN amount_cents ELSE 0 END), 0)
		FROM transactions`,
		string(core.Income), string(core.Expense)).Scan(&income, &expense)
	if err != nil {
		return core.Totals{}, fmt.Errorf("sum by type: %w", err)
	}
	return core.Totals{
		Income:  core.Money{Cents: income},
		Expense: core.Money{Cents: expense},
		Balance: core.Money{Cents: income - expense},
	}, nil
}

// SumByCategory aggregates amounts of the given type per category, ordered by
// category name. Categories with no matching rows are omitted.
func (s *Store) SumByCategory(ctx context.Context, typ core.Type) ([]core.CategoryAmount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount_cents)
		FROM transactions
		WHERE type = ?
		GROUP BY category
		ORDER BY category`, string(typ))
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryAmount
	for rows.Next() {
		var ca core.CategoryAmount
		var cents int64
		if err := rows.Scan(&ca.Name, &cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		ca.Amount = core.Money{Cents: cents}
		out = append(out, ca)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return out, nil
}

// MonthlyTotals aggregates income and expense per "YYYY-MM" month in
// chronological order. Months without transactions are omitted.
func (s *Store) MonthlyTotals(ctx context.Context) ([]core.MonthlyTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(date, 1, 7) AS month,
			COALESCE(SUM(CASE WHEN type = ? THEN amount_cents ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = ? THEN amount_cents ELSE 0 END), 0)
		FROM transactions
		GROUP BY month
		ORDER BY month`,
		string(core.Income), string(core.Expense))
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()

	var out []core.MonthlyTotal
	for rows.Next() {
		var mt core.MonthlyTotal
		var income, expense int64
		if err := rows.Scan(&mt.Month, &income, &expense); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		mt.Income = core.Money{Cents: income}
		mt.Expense = core.Money{Cents: expense}
		out = append(out, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly totals: %w", err)
	}
	return out, nil
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		t     core.Transaction
		date  string
		typ   string
		cents int64
	)
	if err := rows.Scan(&t.ID, &date, &typ, &t.Category, &cents); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction row: %w", err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	t.Date = d
	t.Type = core.Type(typ)
	t.Amount = core.Money{Cents: cents}
	return t, nil
}
