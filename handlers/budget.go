package handlers

import (
	"net/http"

	"github.com/UmangSachdeva/BudgetX/models"
)

// CreateOrUpdateBudget sets the amount of the (category, month, currency)
// budget, creating it on first use.
func (h *Handler) CreateOrUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req models.BudgetCreate
	if !decode(w, r, &req) {
		return
	}
	b, err := h.budgets.CreateOrUpdate(r.Context(), currentUser(r).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	out, err := h.budgets.List(r.Context(), currentUser(r).ID, r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
