package middleware

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/UmangSachdeva/BudgetX/models"
)

type stubAuth map[string]models.User

func (s stubAuth) Authenticate(_ context.Context, token string) (models.User, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return models.User{}, errors.New("bad token")
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write([]byte(u.Username))
}

func TestAuthentication(t *testing.T) {
	h := Authentication(stubAuth{"good": {ID: "u1", Username: "asha"}})(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "asha"},
		{"lowercase scheme", "bearer good", http.StatusOK, "asha"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q", rec.Body.String())
			}
			if tt.status == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Error("missing WWW-Authenticate header")
			}
		})
	}
}

func TestMaintenance(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	open := Maintenance("")(ok)
	rec := httptest.NewRecorder()
	open.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("open status = %d", rec.Code)
	}

	guarded := Maintenance("k3y")(ok)
	for key, want := range map[string]int{"": http.StatusForbidden, "nope": http.StatusForbidden, "k3y": http.StatusNoContent} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if key != "" {
			req.Header.Set(MaintenanceKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("key %q status = %d, want %d", key, rec.Code, want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	h := CORS([]string{"http://app.test"})(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodOptions, "/api/budgets", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Errorf("allow origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("credentials not allowed")
	}
}

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection closed") }

func TestDetailLogsFailedEncode(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	rec := httptest.NewRecorder()
	detail(brokenWriter{rec}, http.StatusUnauthorized, "Invalid authentication credentials")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(logs.String(), "encode response: connection closed") {
		t.Errorf("encode failure not logged: %q", logs.String())
	}
}
