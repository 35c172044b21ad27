package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ownerFromQuery reads the owner pair from the query string.
func ownerFromQuery(r *http.Request) (core.Owner, error) {
	owner := core.Owner{
		ID:    strings.TrimSpace(r.URL.Query().Get("ownerId")),
		Email: strings.TrimSpace(r.URL.Query().Get("ownerEmail")),
	}
	if err := owner.Validate(); err != nil {
		return core.Owner{}, err
	}
	return owner, nil
}

// parseDate accepts a date-only or RFC3339 timestamp string. An empty string
// falls back to the current time.
func parseDate(s string, now func() time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
