package router

import (
	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/BudgetX/handlers"
)

func AuthRouter(public, restricted *mux.Router, h *handlers.Handler) {
	public.HandleFunc("/auth/register", h.Register).Methods("POST")
	public.HandleFunc("/auth/login", h.Login).Methods("POST")

	restricted.HandleFunc("/auth/me", h.GetUserDetails).Methods("GET")
}
