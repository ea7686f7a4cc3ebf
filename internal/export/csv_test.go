package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowallet/internal/core"
	"flowallet/internal/ledger"
	"flowallet/internal/storage"
)

func newTestExporter(t *testing.T) (*Exporter, *ledger.Service) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "flowallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	svc := ledger.NewService(store)
	return NewExporter(svc), svc
}

func TestExportToWritesHeaderAndRows(t *testing.T) {
	exp, svc := newTestExporter(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "1250.50", "Salary", "income", "2025-04-01")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "40", "Groceries", "expense", "2025-04-02")
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := exp.ExportTo(ctx, &buf, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"2025-04-01", "Income", "Salary", "1250.50"}, records[1])
	assert.Equal(t, []string{"2025-04-02", "Expense", "Groceries", "40.00"}, records[2])
}

func TestExportToFilterSelectsMatchingRowsOnly(t *testing.T) {
	exp, svc := newTestExporter(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "1000", "Salary", "income", "2025-04-01")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "40", "Groceries", "expense", "2025-04-02")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "60", "Groceries", "expense", "2025-05-01")
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := exp.ExportTo(ctx, &buf, core.Filter{Category: "groceries"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, rec := range records[1:] {
		assert.Equal(t, "Groceries", rec[2])
	}
}

func TestExportToHeaderOnlyWhenNoMatch(t *testing.T) {
	exp, svc := newTestExporter(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "1000", "Salary", "income", "2025-04-01")
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := exp.ExportTo(ctx, &buf, core.Filter{Category: "nothing-matches"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header must be present even with zero rows")
	assert.Equal(t, Header, records[0])
}

func TestExportWritesFileAtomically(t *testing.T) {
	exp, svc := newTestExporter(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "25", "Books", "expense", "2025-04-03")
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	n, err := exp.Export(ctx, path, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "date,type,category,amount")
	assert.Contains(t, string(data), "2025-04-03,Expense,Books,25.00")

	// No temp files may survive.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExportUnwritablePath(t *testing.T) {
	exp, _ := newTestExporter(t)

	_, err := exp.Export(context.Background(), filepath.Join(t.TempDir(), "missing", "deep", "out.csv"), core.Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out.csv", "error should name the failed path")
}
