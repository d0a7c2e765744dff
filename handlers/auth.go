package handlers

import (
	"net/http"

	"github.com/UmangSachdeva/BudgetX/models"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreate
	if !decode(w, r, &req) {
		return
	}
	token, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.UserLogin
	if !decode(w, r, &req) {
		return
	}
	token, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (h *Handler) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}
