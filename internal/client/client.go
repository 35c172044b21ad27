// Package client is a typed HTTP client for the expense API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sarthak-sharmaa/Expense-tracker/internal/core"
)

// Expense mirrors the server's JSON shape for a single expense.
type Expense struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Date        time.Time  `json:"date"`
	OwnerID     string     `json:"ownerId"`
	OwnerEmail  string     `json:"ownerEmail"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Record converts the wire shape to the domain type.
func (e Expense) Record() core.Record {
	return core.Record{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    core.Category(e.Category),
		Date:        e.Date,
		Owner:       core.Owner{ID: e.OwnerID, Email: e.OwnerEmail},
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// Input is the payload for create and update calls. The owner pair is
// filled in by the client.
type Input struct {
	Description string     `json:"description"`
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Date        string     `json:"date,omitempty"`
	OwnerID     string     `json:"ownerId"`
	OwnerEmail  string     `json:"ownerEmail"`
}

type Client struct {
	baseURL string
	hc      *http.Client
	owner   core.Owner
}

// New creates a client bound to one owner pair. baseURL points at the API
// root, e.g. "http://localhost:5000/api".
func New(baseURL string, owner core.Owner) (*Client, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 15 * time.Second},
		owner:   owner,
	}, nil
}

// Owner returns the owner pair this client acts for.
func (c *Client) Owner() core.Owner {
	return c.owner
}

// Health checks the API health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", false, nil, &out); err != nil {
		return err
	}
	if out.Status != "OK" {
		return fmt.Errorf("unexpected health status %q", out.Status)
	}
	return nil
}

// List fetches the owner's expenses, newest date first.
func (c *Client) List(ctx context.Context) ([]Expense, error) {
	var out []Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, in Input) (Expense, error) {
	in.OwnerID = c.owner.ID
	in.OwnerEmail = c.owner.Email
	var out Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", false, in, &out); err != nil {
		return Expense{}, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (Expense, error) {
	var out Expense
	if err := c.do(ctx, http.MethodGet, "/expenses/"+url.PathEscape(id), true, nil, &out); err != nil {
		return Expense{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id string, in Input) (Expense, error) {
	in.OwnerID = c.owner.ID
	in.OwnerEmail = c.owner.Email
	var out Expense
	if err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), false, in, &out); err != nil {
		return Expense{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), true, nil, nil)
}

// do performs one API call. withOwnerQuery adds the owner pair as query
// parameters, used for requests without a body.
func (c *Client) do(ctx context.Context, method, path string, withOwnerQuery bool, in, out any) error {
	target := c.baseURL + path
	if withOwnerQuery {
		q := url.Values{}
		q.Set("ownerId", c.owner.ID)
		q.Set("ownerEmail", c.owner.Email)
		target += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return core.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError extracts the server's error message when present.
func apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, payload.Error)
	}
	return errors.New(http.StatusText(resp.StatusCode))
}
