package core

import (
	"testing"
	"time"
)

func rec(desc string, cents int64, cat Category) Record {
	return Record{
		Description: desc,
		Amount:      Money{Cents: cents},
		Category:    cat,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Owner:       Owner{ID: "u1", Email: "a@x.com"},
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Cents != 0 || s.Count != 0 || s.Average != 0 {
		t.Fatalf("empty summary = %+v, want zeros", s)
	}
	if len(s.ByCategory) != 0 {
		t.Fatalf("empty summary has categories: %+v", s.ByCategory)
	}
}

func TestSummarizeTotals(t *testing.T) {
	records := []Record{
		rec("coffee", 450, Food),
		rec("bus", 250, Transport),
		rec("lunch", 1100, Food),
	}
	s := Summarize(records)
	if s.Total.Cents != 1800 {
		t.Fatalf("total = %d, want 1800", s.Total.Cents)
	}
	if s.Count != 3 {
		t.Fatalf("count = %d, want 3", s.Count)
	}
	if s.Average != 6.0 {
		t.Fatalf("average = %v, want 6.0", s.Average)
	}
}

func TestSummarizeByCategoryOrderAndSum(t *testing.T) {
	records := []Record{
		rec("cinema", 900, Entertainment),
		rec("coffee", 450, Food),
		rec("popcorn", 300, Entertainment),
		rec("rent", 5000, Bills),
	}
	s := Summarize(records)

	// First-seen ordering
	wantOrder := []Category{Entertainment, Food, Bills}
	if len(s.ByCategory) != len(wantOrder) {
		t.Fatalf("got %d categories, want %d", len(s.ByCategory), len(wantOrder))
	}
	for i, c := range wantOrder {
		if s.ByCategory[i].Category != c {
			t.Fatalf("position %d = %s, want %s", i, s.ByCategory[i].Category, c)
		}
	}
	if s.ByCategory[0].Amount.Cents != 1200 {
		t.Fatalf("Entertainment = %d, want 1200", s.ByCategory[0].Amount.Cents)
	}

	// Breakdown must sum to the grand total
	var sum int64
	for _, ca := range s.ByCategory {
		sum += ca.Amount.Cents
	}
	if sum != s.Total.Cents {
		t.Fatalf("breakdown sum %d != total %d", sum, s.Total.Cents)
	}
}
