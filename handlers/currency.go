package handlers

import (
	"fmt"
	"net/http"

	"github.com/UmangSachdeva/BudgetX/models"
)

func (h *Handler) CurrencyRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.converter.Rates())
}

func (h *Handler) ConvertCurrency(w http.ResponseWriter, r *http.Request) {
	var req models.ConversionRequest
	if !decode(w, r, &req) {
		return
	}
	for _, c := range []models.Currency{req.FromCurrency, req.ToCurrency} {
		if !c.Valid() {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("unsupported currency %q", c))
			return
		}
	}
	writeJSON(w, http.StatusOK, h.converter.Quote(req.Amount, req.FromCurrency, req.ToCurrency))
}
