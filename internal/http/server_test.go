package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/storage"
)

const ownerQuery = "ownerId=user-1&ownerEmail=user@example.com"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return NewServer(":0", repo)
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rr := doJSON(t, s.Handler(), http.MethodGet, "/api/health", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody[map[string]string](t, rr)
	if body["status"] != "OK" {
		t.Errorf("status field = %q, want %q", body["status"], "OK")
	}
	if body["message"] != "Expense Tracker API is running!" {
		t.Errorf("message field = %q", body["message"])
	}
}

func TestListRequiresOwnerPair(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/api/expenses",
		"/api/expenses?ownerId=user-1",
		"/api/expenses?ownerEmail=user@example.com",
	} {
		rr := doJSON(t, s.Handler(), http.MethodGet, target, "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rr.Code)
		}
		body := decodeBody[map[string]string](t, rr)
		if body["error"] != "ownerId and ownerEmail are required" {
			t.Errorf("%s: error = %q", target, body["error"])
		}
	}
}

func TestCreateExpense(t *testing.T) {
	s := newTestServer(t)

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/expenses",
		`{"description":"Coffee","amount":4.50,"category":"Food","date":"2025-03-10","ownerId":"user-1","ownerEmail":"user@example.com"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rr.Code, rr.Body.String())
	}
	body := decodeBody[map[string]any](t, rr)
	if body["id"] == "" || body["id"] == nil {
		t.Error("expected non-empty id")
	}
	if got := body["amount"].(float64); got != 4.5 {
		t.Errorf("amount = %v, want 4.5", got)
	}
	if body["category"] != "Food" {
		t.Errorf("category = %v, want Food", body["category"])
	}
}

func TestCreateExpenseAcceptsStringAmount(t *testing.T) {
	s := newTestServer(t)

	rr := doJSON(t, s.Handler(), http.MethodPost, "/api/expenses",
		`{"description":"Coffee","amount":"4.50","category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rr.Code, rr.Body.String())
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing category", `{"description":"Coffee","amount":4.5,"ownerId":"user-1","ownerEmail":"user@example.com"}`},
		{"unknown category", `{"description":"Coffee","amount":4.5,"category":"Gambling","ownerId":"user-1","ownerEmail":"user@example.com"}`},
		{"missing description", `{"amount":4.5,"category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`},
		{"zero amount", `{"description":"Coffee","amount":0,"category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`},
		{"negative amount", `{"description":"Coffee","amount":-2,"category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`},
		{"missing owner", `{"description":"Coffee","amount":4.5,"category":"Food"}`},
		{"malformed json", `{"description":`},
		{"bad date", `{"description":"Coffee","amount":4.5,"category":"Food","date":"10/03/2025","ownerId":"user-1","ownerEmail":"user@example.com"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doJSON(t, s.Handler(), http.MethodPost, "/api/expenses", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", rr.Code, rr.Body.String())
			}
		})
	}

	// None of the rejected requests should have persisted anything.
	rr := doJSON(t, s.Handler(), http.MethodGet, "/api/expenses?"+ownerQuery, "")
	if got := decodeBody[[]map[string]any](t, rr); len(got) != 0 {
		t.Errorf("expected empty list after rejected creates, got %d records", len(got))
	}
}

func TestGetExpenseScopedToOwner(t *testing.T) {
	s := newTestServer(t)

	created := decodeBody[map[string]any](t, doJSON(t, s.Handler(), http.MethodPost, "/api/expenses",
		`{"description":"Coffee","amount":4.5,"category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`))
	id := created["id"].(string)

	rr := doJSON(t, s.Handler(), http.MethodGet, "/api/expenses/"+id+"?"+ownerQuery, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	// Same id, different owner pair.
	rr = doJSON(t, s.Handler(), http.MethodGet, "/api/expenses/"+id+"?ownerId=user-2&ownerEmail=user@example.com", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	body := decodeBody[map[string]string](t, rr)
	if body["error"] != "Expense not found" {
		t.Errorf("error = %q, want %q", body["error"], "Expense not found")
	}
}

func TestUpdateExpense(t *testing.T) {
	s := newTestServer(t)

	created := decodeBody[map[string]any](t, doJSON(t, s.Handler(), http.MethodPost, "/api/expenses",
		`{"description":"Coffee","amount":4.5,"category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`))
	id := created["id"].(string)

	rr := doJSON(t, s.Handler(), http.MethodPut, "/api/expenses/"+id,
		`{"description":"Lunch","amount":12,"category":"Food","date":"2025-03-11","ownerId":"user-1","ownerEmail":"user@example.com"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}
	body := decodeBody[map[string]any](t, rr)
	if body["description"] != "Lunch" {
		t.Errorf("description = %v, want Lunch", body["description"])
	}
	if got := body["amount"].(float64); got != 12 {
		t.Errorf("amount = %v, want 12", got)
	}

	rr = doJSON(t, s.Handler(), http.MethodPut, "/api/expenses/missing",
		`{"description":"Lunch","amount":12,"category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("update missing: status = %d, want 404", rr.Code)
	}
}

func TestDeleteExpense(t *testing.T) {
	s := newTestServer(t)

	created := decodeBody[map[string]any](t, doJSON(t, s.Handler(), http.MethodPost, "/api/expenses",
		`{"description":"Coffee","amount":4.5,"category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`))
	id := created["id"].(string)

	rr := doJSON(t, s.Handler(), http.MethodDelete, "/api/expenses/"+id+"?"+ownerQuery, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody[map[string]string](t, rr)
	if body["message"] != "Expense deleted successfully" {
		t.Errorf("message = %q", body["message"])
	}

	rr = doJSON(t, s.Handler(), http.MethodDelete, "/api/expenses/"+id+"?"+ownerQuery, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", rr.Code)
	}
}

func TestListSortedByDateDescending(t *testing.T) {
	s := newTestServer(t)

	for _, day := range []string{"2025-03-05", "2025-03-20", "2025-03-10"} {
		rr := doJSON(t, s.Handler(), http.MethodPost, "/api/expenses",
			`{"description":"On `+day+`","amount":1,"category":"Other","date":"`+day+`","ownerId":"user-1","ownerEmail":"user@example.com"}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("seed %s: status = %d", day, rr.Code)
		}
	}

	rr := doJSON(t, s.Handler(), http.MethodGet, "/api/expenses?"+ownerQuery, "")
	got := decodeBody[[]map[string]any](t, rr)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	want := []string{"On 2025-03-20", "On 2025-03-10", "On 2025-03-05"}
	for i, w := range want {
		if got[i]["description"] != w {
			t.Errorf("position %d: description = %v, want %q", i, got[i]["description"], w)
		}
	}
}

// failingStore returns errors on everything, for exercising the 500 paths.
type failingStore struct{}

var errBoom = errors.New("boom")

func (failingStore) List(context.Context, core.Owner) ([]core.Record, error) { return nil, errBoom }
func (failingStore) Create(context.Context, core.Record) (core.Record, error) {
	return core.Record{}, errBoom
}
func (failingStore) Get(context.Context, string, core.Owner) (core.Record, error) {
	return core.Record{}, errBoom
}
func (failingStore) Update(context.Context, string, core.Owner, core.Record) (core.Record, error) {
	return core.Record{}, errBoom
}
func (failingStore) Delete(context.Context, string, core.Owner) (core.Record, error) {
	return core.Record{}, errBoom
}

func TestStoreFailuresReturnGenericErrors(t *testing.T) {
	s := NewServer(":0", failingStore{})
	validBody := `{"description":"Coffee","amount":4.5,"category":"Food","ownerId":"user-1","ownerEmail":"user@example.com"}`

	tests := []struct {
		method, target, body, wantErr string
	}{
		{http.MethodGet, "/api/expenses?" + ownerQuery, "", "Failed to fetch expenses"},
		{http.MethodPost, "/api/expenses", validBody, "Failed to create expense"},
		{http.MethodGet, "/api/expenses/x?" + ownerQuery, "", "Failed to fetch expense"},
		{http.MethodPut, "/api/expenses/x", validBody, "Failed to update expense"},
		{http.MethodDelete, "/api/expenses/x?" + ownerQuery, "", "Failed to delete expense"},
	}
	for _, tc := range tests {
		rr := doJSON(t, s.Handler(), tc.method, tc.target, tc.body)
		if rr.Code != http.StatusInternalServerError {
			t.Errorf("%s %s: status = %d, want 500", tc.method, tc.target, rr.Code)
			continue
		}
		body := decodeBody[map[string]string](t, rr)
		if body["error"] != tc.wantErr {
			t.Errorf("%s %s: error = %q, want %q", tc.method, tc.target, body["error"], tc.wantErr)
		}
	}
}
