package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"flowallet/internal/charts"
	"flowallet/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today string
		Types []core.Type
	}{
		Today: core.Today().String(),
		Types: []core.Type{core.Income, core.Expense},
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	amount := sanitizeInput(r.Form.Get("amount"))
	category := sanitizeInput(r.Form.Get("category"))
	typ := sanitizeInput(r.Form.Get("type"))
	date := sanitizeInput(r.Form.Get("date"))

	added, err := s.ledger.Add(r.Context(), amount, category, typ, date)
	if err != nil {
		if core.IsValidation(err) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Transaction insert error", "error", err, "category", category)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not save the transaction</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"transactions:changed": {"id": `+strconv.FormatInt(added.ID, 10)+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Recorded ` + template.HTMLEscapeString(string(added.Type)) +
		` #` + strconv.FormatInt(added.ID, 10) + `: ` +
		template.HTMLEscapeString(added.Category) +
		` — ` + template.HTMLEscapeString(added.Amount.String()) +
		` on ` + template.HTMLEscapeString(added.Date.String()) + `</div>`))
}

// handleTransactionTable renders the transaction table partial, filtered by
// the query parameters.
func (s *Server) handleTransactionTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	f := parseFilter(r.URL.Query())
	items, err := s.ledger.Search(r.Context(), f)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction search error", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Error loading transactions</div>`))
		return
	}
	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">` + strconv.Itoa(len(items)) + ` transactions</div>`))
		return
	}

	type row struct {
		ID       int64
		Date     string
		Type     string
		Category string
		Amount   string
	}
	data := struct {
		Rows     []row
		Filtered bool
	}{Filtered: !f.IsZero()}
	for _, t := range items {
		data.Rows = append(data.Rows, row{
			ID:       t.ID,
			Date:     t.Date.String(),
			Type:     string(t.Type),
			Category: t.Category,
			Amount:   t.Amount.String(),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "transaction_table.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "transaction_table.html")
		_, _ = w.Write([]byte(`<div class="placeholder">Error rendering transactions</div>`))
	}
}

func (s *Server) handleDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	ids := parseIDs(r.Form["id"])
	if len(ids) == 0 {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="placeholder">Nothing selected</div>`))
		return
	}

	n, err := s.ledger.DeleteMany(r.Context(), ids)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction delete error", "error", err, "ids", ids)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not delete the transactions</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"transactions:changed": {"deleted": `+strconv.FormatInt(n, 10)+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Deleted ` + strconv.FormatInt(n, 10) + ` transaction(s)</div>`))
}

// handleTotals renders the income/expense/balance partial.
func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	totals, err := s.ledger.Totals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Totals error", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Error loading totals</div>`))
		return
	}
	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">Balance: ` + totals.Balance.String() + `</div>`))
		return
	}

	data := struct {
		Income  string
		Expense string
		Balance string
	}{
		Income:  totals.Income.String(),
		Expense: totals.Expense.String(),
		Balance: totals.Balance.String(),
	}
	if err := s.templates.ExecuteTemplate(w, "totals.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "totals.html")
		_, _ = w.Write([]byte(`<div class="placeholder">Error rendering totals</div>`))
	}
}

// handleExport streams the filtered transactions as a CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r.URL.Query())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	n, err := s.exporter.ExportTo(r.Context(), w, f)
	if err != nil {
		// Headers may already be out; log and abort the stream.
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
		return
	}
	slog.InfoContext(r.Context(), "CSV download served", "rows", n)
}

func (s *Server) handleIncomeByCategory(w http.ResponseWriter, r *http.Request) {
	s.renderCategoryChart(w, r, core.Income)
}

func (s *Server) handleExpenseByCategory(w http.ResponseWriter, r *http.Request) {
	s.renderCategoryChart(w, r, core.Expense)
}

func (s *Server) renderCategoryChart(w http.ResponseWriter, r *http.Request, typ core.Type) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var err error
	switch r.URL.Query().Get("kind") {
	case "bar":
		err = s.charts.RenderCategoryBar(r.Context(), typ, w)
	default:
		err = s.charts.RenderCategoryPie(r.Context(), typ, w)
	}
	s.finishChart(w, r, err, fmt.Sprintf("No %s data to chart yet", typ))
}

func (s *Server) handleIncomeVsExpenses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var err error
	switch r.URL.Query().Get("kind") {
	case "pie":
		err = s.charts.RenderComparisonPie(r.Context(), w)
	default:
		err = s.charts.RenderComparisonBar(r.Context(), w)
	}
	s.finishChart(w, r, err, "No data to chart yet")
}

func (s *Server) handleMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := s.charts.RenderMonthlyTrends(r.Context(), w)
	s.finishChart(w, r, err, "No data to chart yet")
}

func (s *Server) finishChart(w http.ResponseWriter, r *http.Request, err error, emptyMsg string) {
	if err == nil {
		return
	}
	if errors.Is(err, charts.ErrNoData) {
		_, _ = w.Write([]byte(`<div class="placeholder">` + template.HTMLEscapeString(emptyMsg) + `</div>`))
		return
	}
	slog.ErrorContext(r.Context(), "Chart render error", "error", err, "url", r.URL.Path)
	http.Error(w, "chart rendering failed", http.StatusInternalServerError)
}
