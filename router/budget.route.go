package router

import (
	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/BudgetX/handlers"
)

func BudgetRouter(restricted *mux.Router, h *handlers.Handler) {
	restricted.HandleFunc("/budgets", h.CreateOrUpdateBudget).Methods("POST")
	restricted.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
}
