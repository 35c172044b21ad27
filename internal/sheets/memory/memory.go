// Package memory provides an in-memory RowAppender used in tests and when
// no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []sheets.ExportRow
}

var _ sheets.RowAppender = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) AppendRow(ctx context.Context, row sheets.ExportRow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of the appended rows.
func (s *Store) Rows() []sheets.ExportRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sheets.ExportRow, len(s.rows))
	copy(out, s.rows)
	return out
}
