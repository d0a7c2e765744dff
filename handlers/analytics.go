package handlers

import (
	"net/http"

	"github.com/UmangSachdeva/BudgetX/services"
)

func (h *Handler) FinancialInsights(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r.URL.Query(), "days", services.DefaultWindowDays)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.analytics.FinancialInsights(r.Context(), currentUser(r).ID, days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	out, err := h.analytics.CategoryBreakdown(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// SpendingTrends treats an unknown period as monthly rather than rejecting it.
func (h *Handler) SpendingTrends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days, err := queryInt(q, "days", services.DefaultWindowDays)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.analytics.SpendingTrends(r.Context(), currentUser(r).ID, q.Get("period"), days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) BudgetProgress(w http.ResponseWriter, r *http.Request) {
	out, err := h.budgets.ProgressForMonth(r.Context(), currentUser(r).ID, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
