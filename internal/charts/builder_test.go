package charts

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowallet/internal/core"
	"flowallet/internal/ledger"
	"flowallet/internal/storage"
)

func newTestBuilder(t *testing.T) (*Builder, *ledger.Service) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "flowallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewBuilder(store), ledger.NewService(store)
}

func TestByCategoryOnlyRequestedType(t *testing.T) {
	b, svc := newTestBuilder(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "1000", "Salary", "income", "2025-01-05")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "40", "Groceries", "expense", "2025-01-10")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "60", "Groceries", "expense", "2025-01-12")
	require.NoError(t, err)

	sums, err := b.ByCategory(ctx, core.Expense)
	require.NoError(t, err)
	require.Len(t, sums, 1, "income categories must not appear")
	assert.Equal(t, "Groceries", sums[0].Name)
	assert.EqualValues(t, 10000, sums[0].Amount.Cents)
}

func TestByMonthOmitsGapMonths(t *testing.T) {
	b, svc := newTestBuilder(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "1000", "Salary", "income", "2025-01-05")
	require.NoError(t, err)
	// Nothing in February or March.
	_, err = svc.Add(ctx, "40", "Groceries", "expense", "2025-04-10")
	require.NoError(t, err)

	months, err := b.ByMonth(ctx)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2025-01", months[0].Month)
	assert.Equal(t, "2025-04", months[1].Month)
	assert.EqualValues(t, 100000, months[0].Income.Cents)
	assert.EqualValues(t, 4000, months[1].Expense.Cents)
}

func TestRenderEmptyDataset(t *testing.T) {
	b, _ := newTestBuilder(t)
	ctx := context.Background()

	var buf bytes.Buffer
	assert.ErrorIs(t, b.RenderCategoryPie(ctx, core.Expense, &buf), ErrNoData)
	assert.ErrorIs(t, b.RenderCategoryBar(ctx, core.Income, &buf), ErrNoData)
	assert.ErrorIs(t, b.RenderComparisonBar(ctx, &buf), ErrNoData)
	assert.ErrorIs(t, b.RenderComparisonPie(ctx, &buf), ErrNoData)
	assert.ErrorIs(t, b.RenderMonthlyTrends(ctx, &buf), ErrNoData)
	assert.Zero(t, buf.Len(), "nothing may be written when there is no data")
}

func TestRenderCategoryPieWritesPage(t *testing.T) {
	b, svc := newTestBuilder(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "40", "Groceries", "expense", "2025-01-10")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.RenderCategoryPie(ctx, core.Expense, &buf))
	page := buf.String()
	assert.Contains(t, page, "echarts")
	assert.Contains(t, page, "Groceries")
	assert.Contains(t, page, "Expense by Category")
}

func TestRenderMonthlyTrendsWritesBothSeries(t *testing.T) {
	b, svc := newTestBuilder(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "1000", "Salary", "income", "2025-01-05")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "40", "Groceries", "expense", "2025-02-10")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, b.RenderMonthlyTrends(ctx, &buf))
	page := buf.String()
	assert.Contains(t, page, "2025-01")
	assert.Contains(t, page, "2025-02")
	assert.Contains(t, page, "Income")
	assert.Contains(t, page, "Expense")
}
