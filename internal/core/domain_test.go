package core

import (
	"strings"
	"testing"
	"time"
)

func validRecord() Record {
	return Record{
		Description: "Coffee",
		Amount:      Money{Cents: 450},
		Category:    Food,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Owner:       Owner{ID: "u1", Email: "a@x.com"},
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("category %q should be valid", c)
		}
	}
	for _, c := range []Category{"", "food", "Groceries", "FOOD"} {
		if c.Valid() {
			t.Fatalf("category %q should be invalid", c)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestOwnerValidate(t *testing.T) {
	if err := (Owner{ID: "u1", Email: "a@x.com"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Owner{
		{},
		{ID: "u1"},
		{Email: "a@x.com"},
		{ID: "  ", Email: "a@x.com"},
	}
	for i, o := range bads {
		if err := o.Validate(); err != ErrMissingOwner {
			t.Fatalf("case %d expected ErrMissingOwner, got %v", i, err)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	if err := validRecord().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Record)
		want   error
	}{
		{"empty description", func(r *Record) { r.Description = "" }, ErrEmptyDescription},
		{"whitespace description", func(r *Record) { r.Description = "   " }, ErrEmptyDescription},
		{"zero amount", func(r *Record) { r.Amount = Money{} }, ErrInvalidAmount},
		{"bad category", func(r *Record) { r.Category = "Misc" }, ErrInvalidCategory},
		{"missing owner", func(r *Record) { r.Owner = Owner{} }, ErrMissingOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			tc.mutate(&r)
			if err := r.Validate(); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("long description", func(t *testing.T) {
		r := validRecord()
		r.Description = strings.Repeat("x", 201)
		if err := r.Validate(); err == nil {
			t.Fatalf("expected error for long description")
		}
	})
}
