package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
)

// timeLayout is second-precision RFC 3339 in UTC. The fixed width keeps
// lexicographic TEXT ordering equal to chronological ordering, which the
// date-descending list query relies on.
const timeLayout = "2006-01-02T15:04:05Z"

const recordColumns = "id, description, amount_cents, category, date, owner_id, owner_email, created_at, updated_at"

// SQLiteRepository persists expense records in a single SQLite database.
// Every read, update, and delete is scoped by the full owner pair; the
// record identifier alone is never sufficient to reach a row.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create assigns an identifier and timestamps, then persists the record.
// The date defaults to the creation time when absent.
func (r *SQLiteRepository) Create(ctx context.Context, rec core.Record) (core.Record, error) {
	now := time.Now().UTC().Truncate(time.Second)
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Date.IsZero() {
		rec.Date = now
	}
	rec.Date = rec.Date.UTC().Truncate(time.Second)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Description, rec.Amount.Cents, string(rec.Category),
		rec.Date.Format(timeLayout), rec.Owner.ID, rec.Owner.Email,
		rec.CreatedAt.Format(timeLayout), rec.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return core.Record{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"record_id", rec.ID,
		"description", rec.Description,
		"amount_cents", rec.Amount.Cents,
		"category", rec.Category,
		"owner_id", rec.Owner.ID)

	return rec, nil
}

// List returns all records for the owner pair, newest date first.
func (r *SQLiteRepository) List(ctx context.Context, owner core.Owner) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM expenses WHERE owner_id = ? AND owner_email = ? ORDER BY date DESC`,
		owner.ID, owner.Email,
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	records := make([]core.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}

// Get returns the record matching id and owner pair, or core.ErrNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, id string, owner core.Owner) (core.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM expenses WHERE id = ? AND owner_id = ? AND owner_email = ?`,
		id, owner.ID, owner.Email,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, core.ErrNotFound
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("get expense: %w", err)
	}
	return rec, nil
}

// Update overwrites description, amount, category, and date of the record
// matching id and owner pair. Last write wins; there is no concurrency check.
func (r *SQLiteRepository) Update(ctx context.Context, id string, owner core.Owner, rec core.Record) (core.Record, error) {
	now := time.Now().UTC().Truncate(time.Second)
	if rec.Date.IsZero() {
		rec.Date = now
	}
	rec.Date = rec.Date.UTC().Truncate(time.Second)

	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount_cents = ?, category = ?, date = ?, updated_at = ?
		 WHERE id = ? AND owner_id = ? AND owner_email = ?`,
		rec.Description, rec.Amount.Cents, string(rec.Category),
		rec.Date.Format(timeLayout), now.Format(timeLayout),
		id, owner.ID, owner.Email,
	)
	if err != nil {
		return core.Record{}, fmt.Errorf("update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Record{}, fmt.Errorf("update expense rows affected: %w", err)
	}
	if affected == 0 {
		return core.Record{}, core.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense updated", "record_id", id, "owner_id", owner.ID)
	return r.Get(ctx, id, owner)
}

// Delete removes the record matching id and owner pair and returns a
// snapshot of what was removed, or core.ErrNotFound.
func (r *SQLiteRepository) Delete(ctx context.Context, id string, owner core.Owner) (core.Record, error) {
	rec, err := r.Get(ctx, id, owner)
	if err != nil {
		return core.Record{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND owner_id = ? AND owner_email = ?`,
		id, owner.ID, owner.Email,
	)
	if err != nil {
		return core.Record{}, fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Record{}, fmt.Errorf("delete expense rows affected: %w", err)
	}
	if affected == 0 {
		return core.Record{}, core.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "record_id", id, "owner_id", owner.ID)
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec      core.Record
		category string
		date     string
		created  string
		updated  string
	)
	err := row.Scan(&rec.ID, &rec.Description, &rec.Amount.Cents, &category,
		&date, &rec.Owner.ID, &rec.Owner.Email, &created, &updated)
	if err != nil {
		return core.Record{}, err
	}
	rec.Category = core.Category(category)
	if rec.Date, err = time.Parse(timeLayout, date); err != nil {
		return core.Record{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	if rec.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return core.Record{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return core.Record{}, fmt.Errorf("parse updated_at %q: %w", updated, err)
	}
	return rec, nil
}
