package router

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"github.com/UmangSachdeva/BudgetX/handlers"
	"github.com/UmangSachdeva/BudgetX/middleware"
)

type Options struct {
	Auth           middleware.Authenticator
	MaintenanceKey string
	CORSOrigins    []string
}

// New builds the /api route table and wraps it in the request middleware
// chain: request id, real ip, access log, panic recovery, CORS.
func New(h *handlers.Handler, opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	r.HandleFunc("/api", handlers.Root).Methods("GET")
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", handlers.Root).Methods("GET")

	// Operator endpoints sit outside the per-user auth boundary.
	maintenance := api.NewRoute().Subrouter()
	maintenance.Use(middleware.Maintenance(opts.MaintenanceKey))

	restricted := api.NewRoute().Subrouter()
	restricted.Use(middleware.Authentication(opts.Auth))

	AuthRouter(api, restricted, h)
	CurrencyRouter(api, h)
	TransactionRouter(restricted, maintenance, h)
	BudgetRouter(restricted, h)
	AnalyticsRouter(restricted, h)
	ReportRouter(restricted, h)

	chain := []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		chimw.Logger,
		chimw.Recoverer,
		middleware.CORS(opts.CORSOrigins),
	}
	var handler http.Handler = r
	for i := len(chain) - 1; i >= 0; i-- {
		handler = chain[i](handler)
	}
	return handler
}
