package sheets

import (
	"context"
	"time"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
)

// ExportRow is one audit line appended to the export sheet: a change event
// plus the record data it concerned.
type ExportRow struct {
	When     time.Time
	Event    string
	RecordID string
	Record   core.Record
}

// RowAppender is the outbound port for the spreadsheet export.
type RowAppender interface {
	// AppendRow appends one row and returns an adapter-specific reference
	// to where it landed.
	AppendRow(ctx context.Context, row ExportRow) (ref string, err error)
}
