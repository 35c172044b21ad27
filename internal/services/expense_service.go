package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/amqp"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/storage"
)

// ExpenseService orchestrates expense operations across SQLite and AMQP
type ExpenseService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewExpenseService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *ExpenseService {
	return &ExpenseService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// List returns the owner's expenses sorted by date descending.
func (s *ExpenseService) List(ctx context.Context, owner core.Owner) ([]core.Record, error) {
	return s.storage.List(ctx, owner)
}

// Get returns one expense scoped to the owner pair.
func (s *ExpenseService) Get(ctx context.Context, id string, owner core.Owner) (core.Record, error) {
	return s.storage.Get(ctx, id, owner)
}

// Create saves an expense locally and publishes a change event.
func (s *ExpenseService) Create(ctx context.Context, rec core.Record) (core.Record, error) {
	// Save to SQLite first (fast, reliable)
	saved, err := s.storage.Create(ctx, rec)
	if err != nil {
		return core.Record{}, fmt.Errorf("save expense: %w", err)
	}

	if err := s.publishEvent(ctx, amqp.NewChangeEvent(amqp.EventCreated, saved)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish created event",
			"id", saved.ID, "error", err)
		// Don't fail the request - expense is saved locally
	}

	return saved, nil
}

// Update replaces an expense's mutable fields and publishes a change event.
func (s *ExpenseService) Update(ctx context.Context, id string, owner core.Owner, rec core.Record) (core.Record, error) {
	updated, err := s.storage.Update(ctx, id, owner, rec)
	if err != nil {
		return core.Record{}, err
	}

	if err := s.publishEvent(ctx, amqp.NewChangeEvent(amqp.EventUpdated, updated)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish updated event",
			"id", updated.ID, "error", err)
	}

	return updated, nil
}

// Delete removes an expense and publishes a delete event carrying a snapshot
// of the deleted record, since the row is gone by the time a consumer reads it.
func (s *ExpenseService) Delete(ctx context.Context, id string, owner core.Owner) (core.Record, error) {
	deleted, err := s.storage.Delete(ctx, id, owner)
	if err != nil {
		return core.Record{}, err
	}

	if err := s.publishEvent(ctx, amqp.NewDeleteEvent(deleted)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish deleted event",
			"id", deleted.ID, "error", err)
	}

	return deleted, nil
}

func (s *ExpenseService) publishEvent(ctx context.Context, ev *amqp.ExpenseEvent) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping event", "type", ev.Type)
		return nil
	}

	return s.amqpClient.PublishExpenseEvent(ctx, ev)
}

// Close closes both storage and AMQP connections
func (s *ExpenseService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}
