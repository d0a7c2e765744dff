package router

import (
	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/BudgetX/handlers"
)

// CurrencyRouter registers the public currency endpoints.
func CurrencyRouter(public *mux.Router, h *handlers.Handler) {
	public.HandleFunc("/currency/rates", h.CurrencyRates).Methods("GET")
	public.HandleFunc("/currency/convert", h.ConvertCurrency).Methods("POST")
}
