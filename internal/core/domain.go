package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Other         Category = "Other"
)

type (
	// Category is the fixed set of expense categories.
	Category string

	Money struct {
		Cents int64
	}

	// Owner is the client-supplied identity pair that scopes every record.
	// It is trusted verbatim; there is no identity provider behind it.
	Owner struct {
		ID    string
		Email string
	}

	Record struct {
		ID          string
		Description string
		Amount      Money
		Category    Category
		Date        time.Time
		Owner       Owner
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrMissingOwner     = errors.New("ownerId and ownerEmail are required")
	ErrNotFound         = errors.New("expense not found")
)

// Categories returns the valid categories in display order.
func Categories() []Category {
	return []Category{Food, Transport, Entertainment, Shopping, Bills, Other}
}

func (c Category) Valid() bool {
	switch c {
	case Food, Transport, Entertainment, Shopping, Bills, Other:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	return string(c)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (o Owner) Validate() error {
	if strings.TrimSpace(o.ID) == "" || strings.TrimSpace(o.Email) == "" {
		return ErrMissingOwner
	}
	return nil
}

func (r Record) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	return r.Owner.Validate()
}
