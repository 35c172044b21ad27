// Package app holds the terminal client's view state: the loaded expense
// list, derived statistics, the add/edit form, and transient banners.
package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/client"
	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
)

// Mode is the form state. At most one form is open at a time.
type Mode int

const (
	ModeIdle Mode = iota
	ModeAdd
	ModeEdit
)

// Form holds raw user input, kept as strings until submit.
type Form struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// API is the slice of the expense client the controller needs.
type API interface {
	List(ctx context.Context) ([]client.Expense, error)
	Create(ctx context.Context, in client.Input) (client.Expense, error)
	Update(ctx context.Context, id string, in client.Input) (client.Expense, error)
	Delete(ctx context.Context, id string) error
}

const successBannerTTL = 3 * time.Second

var (
	errIncompleteForm = errors.New("Please fill in all fields")
	errInvalidAmount  = errors.New("Invalid amount")
)

type App struct {
	api API

	mu           sync.Mutex
	records      []client.Expense
	summary      core.Summary
	mode         Mode
	editingID    string
	form         Form
	errMsg       string
	successMsg   string
	successUntil time.Time
	now          func() time.Time
}

func New(api API) *App {
	return &App{
		api: api,
		now: time.Now,
	}
}

// Refresh reloads the expense list and recomputes statistics. On failure the
// previously loaded list is kept and an error banner is set.
func (a *App) Refresh(ctx context.Context) error {
	records, err := a.api.List(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.errMsg = "Failed to fetch expenses"
		return err
	}

	a.records = records
	a.summary = core.Summarize(toRecords(records))
	a.errMsg = ""
	return nil
}

// OpenAdd opens an empty form.
func (a *App) OpenAdd() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = ModeAdd
	a.editingID = ""
	a.form = Form{}
	a.errMsg = ""
}

// OpenEdit opens the form prefilled from the loaded record with the given id.
func (a *App) OpenEdit(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, rec := range a.records {
		if rec.ID == id {
			a.mode = ModeEdit
			a.editingID = id
			a.form = Form{
				Description: rec.Description,
				Amount:      rec.Amount.String(),
				Category:    rec.Category,
				Date:        rec.Date.Format("2006-01-02"),
			}
			a.errMsg = ""
			return true
		}
	}
	a.errMsg = "Expense not found"
	return false
}

// Cancel closes the form and discards its input.
func (a *App) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = ModeIdle
	a.editingID = ""
	a.form = Form{}
	a.errMsg = ""
}

// SetForm replaces the form input.
func (a *App) SetForm(f Form) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.form = f
}

// Submit sends the open form to the API. On any failure the form stays open
// so the input is not lost; on success the form closes, the list refreshes
// and a success banner is shown for a few seconds.
func (a *App) Submit(ctx context.Context) error {
	a.mu.Lock()
	mode := a.mode
	editingID := a.editingID
	form := a.form
	a.mu.Unlock()

	if mode == ModeIdle {
		return nil
	}

	in, err := inputFromForm(form)
	if err != nil {
		a.setError(err.Error())
		return err
	}

	if mode == ModeEdit {
		_, err = a.api.Update(ctx, editingID, in)
	} else {
		_, err = a.api.Create(ctx, in)
	}
	if err != nil {
		a.setError("Failed to save expense")
		return err
	}

	msg := "Expense added successfully!"
	if mode == ModeEdit {
		msg = "Expense updated successfully!"
	}

	a.mu.Lock()
	a.mode = ModeIdle
	a.editingID = ""
	a.form = Form{}
	a.mu.Unlock()

	a.setSuccess(msg)
	return a.Refresh(ctx)
}

// DeleteExpense removes a record after confirmation. A declined confirmation
// is a no-op.
func (a *App) DeleteExpense(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}

	if err := a.api.Delete(ctx, id); err != nil {
		a.setError("Failed to delete expense")
		return err
	}

	a.setSuccess("Expense deleted successfully!")
	return a.Refresh(ctx)
}

func (a *App) setError(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errMsg = msg
}

func (a *App) setSuccess(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errMsg = ""
	a.successMsg = msg
	a.successUntil = a.now().Add(successBannerTTL)
}

// Records returns the loaded expense list, newest date first.
func (a *App) Records() []client.Expense {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]client.Expense, len(a.records))
	copy(out, a.records)
	return out
}

// Summary returns the derived statistics for the loaded list.
func (a *App) Summary() core.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.summary
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) FormValues() Form {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form
}

func (a *App) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errMsg
}

// Success returns the success banner, or "" once it has expired.
func (a *App) Success() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.successMsg == "" || a.now().After(a.successUntil) {
		return ""
	}
	return a.successMsg
}

func inputFromForm(f Form) (client.Input, error) {
	desc := strings.TrimSpace(f.Description)
	amount := strings.TrimSpace(f.Amount)
	category := strings.TrimSpace(f.Category)
	if desc == "" || amount == "" || category == "" {
		return client.Input{}, errIncompleteForm
	}

	cents, err := core.ParseDecimalToCents(amount)
	if err != nil || cents == 0 {
		return client.Input{}, errInvalidAmount
	}

	return client.Input{
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Date:        strings.TrimSpace(f.Date),
	}, nil
}

func toRecords(expenses []client.Expense) []core.Record {
	out := make([]core.Record, len(expenses))
	for i, e := range expenses {
		out[i] = e.Record()
	}
	return out
}
