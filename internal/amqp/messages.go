package amqp

import (
	"encoding/json"
	"time"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
)

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// ExpenseEvent is the change notification published after a successful
// mutation. Created and updated events stay lightweight (id plus owner pair);
// the consumer fetches the current record from storage. Deleted events carry
// a snapshot because the record no longer exists to fetch.
type ExpenseEvent struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	OwnerEmail string    `json:"ownerEmail"`
	Timestamp  time.Time `json:"timestamp"`

	// Snapshot fields, populated on deleted events only.
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amountCents,omitempty"`
	Category    string    `json:"category,omitempty"`
	Date        time.Time `json:"date,omitempty"`
}

// NewChangeEvent builds a created or updated event for a record.
func NewChangeEvent(eventType string, rec core.Record) *ExpenseEvent {
	return &ExpenseEvent{
		Type:       eventType,
		ID:         rec.ID,
		OwnerID:    rec.Owner.ID,
		OwnerEmail: rec.Owner.Email,
		Timestamp:  time.Now().UTC(),
	}
}

// NewDeleteEvent builds a deleted event carrying the removed record's data.
func NewDeleteEvent(rec core.Record) *ExpenseEvent {
	return &ExpenseEvent{
		Type:        EventDeleted,
		ID:          rec.ID,
		OwnerID:     rec.Owner.ID,
		OwnerEmail:  rec.Owner.Email,
		Timestamp:   time.Now().UTC(),
		Description: rec.Description,
		AmountCents: rec.Amount.Cents,
		Category:    string(rec.Category),
		Date:        rec.Date,
	}
}

// Owner returns the owner pair carried by the event.
func (e *ExpenseEvent) Owner() core.Owner {
	return core.Owner{ID: e.OwnerID, Email: e.OwnerEmail}
}

// Snapshot reconstructs the record carried by a deleted event.
func (e *ExpenseEvent) Snapshot() core.Record {
	return core.Record{
		ID:          e.ID,
		Description: e.Description,
		Amount:      core.Money{Cents: e.AmountCents},
		Category:    core.Category(e.Category),
		Date:        e.Date,
		Owner:       e.Owner(),
	}
}

func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var ev ExpenseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
