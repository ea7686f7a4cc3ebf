// Package export writes filtered transactions to CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"flowallet/internal/core"
	"flowallet/internal/ledger"
)

// Header is the stable column order of every export.
var Header = []string{"date", "type", "category", "amount"}

// Exporter reads the ledger (optionally filtered) and writes matching rows as
// UTF-8, comma-delimited text with fixed two-decimal amounts.
type Exporter struct {
	ledger *ledger.Service
}

func NewExporter(l *ledger.Service) *Exporter {
	return &Exporter{ledger: l}
}

// ExportTo streams matching rows to w with the same filter semantics as
// ledger.Search. The header row is always written, even when nothing matches.
// Returns the number of data rows written.
func (e *Exporter) ExportTo(ctx context.Context, w io.Writer, f core.Filter) (int, error) {
	items, err := e.ledger.Search(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("export query: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range items {
		record := []string{t.Date.String(), string(t.Type), t.Category, t.Amount.String()}
		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(items), nil
}

// Export writes matching rows to path. The data goes to a temporary file in
// the target directory which is renamed into place on success, so a failure
// never leaves a partial file behind.
func (e *Exporter) Export(ctx context.Context, path string, f core.Filter) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create export file %s: %w", path, err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	n, err := e.ExportTo(ctx, tmp, f)
	if err != nil {
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close export file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("finalize export file %s: %w", path, err)
	}

	slog.InfoContext(ctx, "Transactions exported",
		"path", path,
		"rows", n,
		"component", "export",
		"operation", "export_csv")
	return n, nil
}
