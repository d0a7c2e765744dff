package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/BudgetX/helpers"
	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/services"
)

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.TransactionCreate
	if !decode(w, r, &req) {
		return
	}
	t, err := h.transactions.Create(r.Context(), currentUser(r).ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := helpers.ParsePaginate(r.URL.Query(), services.MaxListLimit, services.MaxListLimit)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	txs, err := h.transactions.List(r.Context(), currentUser(r).ID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *Handler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	var q models.TransactionSearch
	if !decode(w, r, &q) {
		return
	}
	txs, err := h.transactions.Search(r.Context(), currentUser(r).ID, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var u models.TransactionUpdate
	if !decode(w, r, &u) {
		return
	}
	t, err := h.transactions.Update(r.Context(), currentUser(r).ID, mux.Vars(r)["id"], u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactions.Delete(r.Context(), currentUser(r).ID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{"Transaction deleted successfully"})
}

func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	out, err := h.analytics.MonthlySummary(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CategorySummary(w http.ResponseWriter, r *http.Request) {
	out, err := h.analytics.CategorySummary(r.Context(), currentUser(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) DailyTrends(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r.URL.Query(), "days", services.DefaultWindowDays)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.analytics.DailyTrends(r.Context(), currentUser(r).ID, days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ProcessRecurring runs the recurring sweep for every user.
func (h *Handler) ProcessRecurring(w http.ResponseWriter, r *http.Request) {
	n, err := h.recurring.ProcessDue(r.Context(), h.now().UTC())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message        string `json:"message"`
		ProcessedCount int    `json:"processed_count"`
	}{fmt.Sprintf("Processed %d recurring transactions", n), n})
}
