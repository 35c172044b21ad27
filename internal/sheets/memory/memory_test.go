package memory

import (
	"context"
	"testing"
	"time"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/sheets"
)

func TestAppendRow(t *testing.T) {
	s := New()

	row := sheets.ExportRow{
		When:     time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Event:    "expense.created",
		RecordID: "abc",
		Record:   core.Record{Description: "Coffee", Amount: core.Money{Cents: 350}},
	}

	ref, err := s.AppendRow(context.Background(), row)
	if err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want %q", ref, "mem:1")
	}

	got := s.Rows()
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].RecordID != "abc" {
		t.Errorf("record id = %q, want %q", got[0].RecordID, "abc")
	}

	// Rows returns a copy, mutating it must not affect the store.
	got[0].RecordID = "mutated"
	if s.Rows()[0].RecordID != "abc" {
		t.Error("Rows should return a copy")
	}
}
