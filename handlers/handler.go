package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UmangSachdeva/BudgetX/currency"
	"github.com/UmangSachdeva/BudgetX/middleware"
	"github.com/UmangSachdeva/BudgetX/models"
	"github.com/UmangSachdeva/BudgetX/services"
)

type Handler struct {
	users        *services.UserService
	transactions *services.TransactionService
	budgets      *services.BudgetService
	analytics    *services.AnalyticsService
	converter    *currency.Converter
	recurring    *services.RecurringProcessor
	now          func() time.Time
}

type Services struct {
	Users        *services.UserService
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Analytics    *services.AnalyticsService
	Converter    *currency.Converter
	Recurring    *services.RecurringProcessor
}

func New(s Services) *Handler {
	return &Handler{
		users:        s.Users,
		transactions: s.Transactions,
		budgets:      s.Budgets,
		analytics:    s.Analytics,
		converter:    s.Converter,
		recurring:    s.Recurring,
		now:          time.Now,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeFile sends an already rendered body such as a PDF.
func writeFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("write %s: %v", filename, err)
	}
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Detail string `json:"detail"`
	}{msg})
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrConflict):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// currentUser is only called behind the authentication middleware.
func currentUser(r *http.Request) models.User {
	u, _ := middleware.UserFromContext(r.Context())
	return u
}

func queryInt(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.ValidationError{Field: key, Reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	return v, nil
}

func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{"Budget Planner API"})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusNotFound, "Not Found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}
