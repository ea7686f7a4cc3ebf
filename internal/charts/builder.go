// Package charts aggregates ledger data for visualization and renders it
// with go-echarts. Rendering produces standalone HTML pages.
package charts

import (
	"context"
	"errors"
	"fmt"
	"io"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"flowallet/internal/core"
	"flowallet/internal/storage"
)

// ErrNoData signals that nothing matched; the UI reports it as a message
// instead of rendering an empty chart.
var ErrNoData = errors.New("no data to show")

// Builder aggregates repository rows by category and by month.
type Builder struct {
	store *storage.Store
}

func NewBuilder(store *storage.Store) *Builder {
	return &Builder{store: store}
}

// ByCategory returns per-category sums restricted to the given transaction
// type. Categories with zero matching transactions are omitted.
func (b *Builder) ByCategory(ctx context.Context, typ core.Type) ([]core.CategoryAmount, error) {
	return b.store.SumByCategory(ctx, typ)
}

// ByMonth returns one entry per month that has at least one transaction, in
// chronological order. Gap months are omitted.
func (b *Builder) ByMonth(ctx context.Context) ([]core.MonthlyTotal, error) {
	return b.store.MonthlyTotals(ctx)
}

// RenderCategoryPie writes a pie chart of per-category sums for typ.
func (b *Builder) RenderCategoryPie(ctx context.Context, typ core.Type, w io.Writer) error {
	sums, err := b.ByCategory(ctx, typ)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		return ErrNoData
	}

	pie := echarts.NewPie()
	pie.SetGlobalOptions(echarts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s by Category", typ),
	}))
	items := make([]opts.PieData, len(sums))
	for i, s := range sums {
		items[i] = opts.PieData{Name: s.Name, Value: s.Amount.Float64()}
	}
	pie.AddSeries("amount", items).SetSeriesOptions(
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
	)
	return pie.Render(w)
}

// RenderCategoryBar writes a bar chart of per-category sums for typ.
func (b *Builder) RenderCategoryBar(ctx context.Context, typ core.Type, w io.Writer) error {
	sums, err := b.ByCategory(ctx, typ)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		return ErrNoData
	}

	labels := make([]string, len(sums))
	values := make([]opts.BarData, len(sums))
	for i, s := range sums {
		labels[i] = s.Name
		values[i] = opts.BarData{Value: s.Amount.Float64()}
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(echarts.WithTitleOpts(opts.Title{
		Title: fmt.Sprintf("%s by Category", typ),
	}))
	bar.SetXAxis(labels).AddSeries("amount", values)
	return bar.Render(w)
}

// RenderComparisonBar writes an income vs. expenses bar chart of the overall
// totals.
func (b *Builder) RenderComparisonBar(ctx context.Context, w io.Writer) error {
	totals, err := b.store.SumByType(ctx)
	if err != nil {
		return err
	}
	if totals.Income.Cents == 0 && totals.Expense.Cents == 0 {
		return ErrNoData
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(echarts.WithTitleOpts(opts.Title{Title: "Income vs. Expenses"}))
	bar.SetXAxis([]string{string(core.Income), string(core.Expense)}).
		AddSeries("total", []opts.BarData{
			{Value: totals.Income.Float64()},
			{Value: totals.Expense.Float64()},
		})
	return bar.Render(w)
}

// RenderComparisonPie writes an income vs. expenses pie chart of the overall
// totals.
func (b *Builder) RenderComparisonPie(ctx context.Context, w io.Writer) error {
	totals, err := b.store.SumByType(ctx)
	if err != nil {
		return err
	}
	if totals.Income.Cents == 0 && totals.Expense.Cents == 0 {
		return ErrNoData
	}

	pie := echarts.NewPie()
	pie.SetGlobalOptions(echarts.WithTitleOpts(opts.Title{Title: "Income vs. Expenses"}))
	pie.AddSeries("total", []opts.PieData{
		{Name: string(core.Income), Value: totals.Income.Float64()},
		{Name: string(core.Expense), Value: totals.Expense.Float64()},
	}).SetSeriesOptions(
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
	)
	return pie.Render(w)
}

// RenderMonthlyTrends writes a line chart with one income and one expense
// series over the months that have transactions.
func (b *Builder) RenderMonthlyTrends(ctx context.Context, w io.Writer) error {
	months, err := b.ByMonth(ctx)
	if err != nil {
		return err
	}
	if len(months) == 0 {
		return ErrNoData
	}

	labels := make([]string, len(months))
	income := make([]opts.LineData, len(months))
	expense := make([]opts.LineData, len(months))
	for i, m := range months {
		labels[i] = m.Month
		income[i] = opts.LineData{Value: m.Income.Float64()}
		expense[i] = opts.LineData{Value: m.Expense.Float64()}
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(echarts.WithTitleOpts(opts.Title{Title: "Monthly Trends"}))
	line.SetXAxis(labels).
		AddSeries(string(core.Income), income).
		AddSeries(string(core.Expense), expense)
	return line.Render(w)
}
