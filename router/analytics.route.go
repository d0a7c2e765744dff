package router

import (
	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/BudgetX/handlers"
)

func AnalyticsRouter(restricted *mux.Router, h *handlers.Handler) {
	restricted.HandleFunc("/analytics/financial-insights", h.FinancialInsights).Methods("GET")
	restricted.HandleFunc("/analytics/category-breakdown", h.CategoryBreakdown).Methods("GET")
	restricted.HandleFunc("/analytics/spending-trends", h.SpendingTrends).Methods("GET")
	restricted.HandleFunc("/analytics/budget-progress", h.BudgetProgress).Methods("GET")
}

func ReportRouter(restricted *mux.Router, h *handlers.Handler) {
	restricted.HandleFunc("/reports/statement", h.StatementPDF).Methods("GET")
}
