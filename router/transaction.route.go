package router

import (
	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/BudgetX/handlers"
)

func TransactionRouter(restricted, maintenance *mux.Router, h *handlers.Handler) {
	maintenance.HandleFunc("/transactions/process-recurring", h.ProcessRecurring).Methods("POST")

	restricted.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	restricted.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	restricted.HandleFunc("/transactions/search", h.SearchTransactions).Methods("POST")
	restricted.HandleFunc("/transactions/summary/monthly", h.MonthlySummary).Methods("GET")
	restricted.HandleFunc("/transactions/summary/categories", h.CategorySummary).Methods("GET")
	restricted.HandleFunc("/transactions/trends/daily", h.DailyTrends).Methods("GET")
	restricted.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	restricted.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
}
