package handlers

import (
	"bytes"
	"net/http"

	"github.com/UmangSachdeva/BudgetX/reports"
	"github.com/UmangSachdeva/BudgetX/services"
)

// StatementPDF renders the month's transactions and budgets as a PDF.
func (h *Handler) StatementPDF(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	month := r.URL.Query().Get("month")
	if month == "" {
		month = services.CurrentMonth(h.now())
	}

	txs, err := h.analytics.MonthTransactions(r.Context(), user.ID, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	budgets, err := h.budgets.List(r.Context(), user.ID, month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = reports.Write(&buf, reports.Statement{
		Username:     user.Username,
		Month:        month,
		Transactions: txs,
		Budgets:      budgets,
		GeneratedAt:  h.now(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeFile(w, "application/pdf", reports.Filename(month), buf.Bytes())
}
