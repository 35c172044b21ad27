// Package worker consumes expense events and appends audit rows to the
// configured export sheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/amqp"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/sheets"
)

// RecordGetter is the slice of the storage layer the worker needs.
type RecordGetter interface {
	Get(ctx context.Context, id string, owner core.Owner) (core.Record, error)
}

// ExportWorker turns expense events into rows on the export sheet.
type ExportWorker struct {
	storage RecordGetter
	rows    sheets.RowAppender
}

func NewExportWorker(storage RecordGetter, rows sheets.RowAppender) *ExportWorker {
	return &ExportWorker{
		storage: storage,
		rows:    rows,
	}
}

// HandleEvent processes a single expense event. For create and update events
// the current record is read back from storage so the exported row reflects
// the latest state, not the event payload. Delete events carry their own
// snapshot since the row is already gone.
func (w *ExportWorker) HandleEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	slog.InfoContext(ctx, "Processing expense event",
		"type", ev.Type,
		"id", ev.ID)

	var rec core.Record
	switch ev.Type {
	case amqp.EventCreated, amqp.EventUpdated:
		var err error
		rec, err = w.storage.Get(ctx, ev.ID, ev.Owner())
		if errors.Is(err, core.ErrNotFound) {
			// Deleted between publish and consume. Nothing to export
			// and requeueing would never succeed.
			slog.WarnContext(ctx, "Expense gone before export, skipping",
				"type", ev.Type, "id", ev.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get expense from storage: %w", err)
		}
	case amqp.EventDeleted:
		rec = ev.Snapshot()
	default:
		slog.WarnContext(ctx, "Unknown event type, skipping", "type", ev.Type)
		return nil
	}

	when := ev.Timestamp
	if when.IsZero() {
		when = time.Now().UTC()
	}

	ref, err := w.rows.AppendRow(ctx, sheets.ExportRow{
		When:     when,
		Event:    ev.Type,
		RecordID: ev.ID,
		Record:   rec,
	})
	if err != nil {
		return fmt.Errorf("append export row: %w", err)
	}

	slog.InfoContext(ctx, "Exported expense event",
		"type", ev.Type,
		"id", ev.ID,
		"sheets_ref", ref)

	return nil
}
