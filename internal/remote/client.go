// Package remote is the HTTP client for the catalog API served by cardcol serve.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/config"
)

var (
	// ErrNotFound is matched by StatusError values carrying a 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is matched by StatusError values carrying a 409.
	ErrConflict = errors.New("conflict")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Code    int
	Kind    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalog API returned status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("catalog API returned status %d", e.Code)
}

// Is lets callers match on ErrNotFound and ErrConflict.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrConflict:
		return e.Code == http.StatusConflict
	}
	return false
}

// Client talks to the catalog API.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a client rooted at baseURL, e.g. http://localhost:3000/api/v1.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientFromConfig creates a client from environment settings.
func NewClientFromConfig(cfg *config.Client) *Client {
	return NewClient(cfg.APIURL, cfg.Timeout)
}

// ListCards fetches every card.
func (c *Client) ListCards(ctx context.Context) ([]catalog.Card, error) {
	var cards []catalog.Card
	if err := c.do(ctx, http.MethodGet, "/cards", nil, &cards); err != nil {
		return nil, err
	}
	return decorate(cards), nil
}

// SearchCards fetches cards whose name contains name, case-insensitively.
func (c *Client) SearchCards(ctx context.Context, name string) ([]catalog.Card, error) {
	var cards []catalog.Card
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/cards", body, &cards); err != nil {
		return nil, err
	}
	return decorate(cards), nil
}

// AdjustCard applies delta to the owned count of a card and returns the
// server's new count. A nil delta means +1.
func (c *Client) AdjustCard(ctx context.Context, number string, delta *int) (int, error) {
	body := struct {
		ID     string `json:"id"`
		Number *int   `json:"number"`
	}{ID: number, Number: delta}

	var count int
	if err := c.do(ctx, http.MethodPut, "/cards", body, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListSeries fetches every series with its card count.
func (c *Client) ListSeries(ctx context.Context) ([]catalog.Series, error) {
	var series []catalog.Series
	if err := c.do(ctx, http.MethodGet, "/series", nil, &series); err != nil {
		return nil, err
	}
	return series, nil
}

// Health checks that the API is reachable and speaks the expected contract.
func (c *Client) Health(ctx context.Context) error {
	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return err
	}
	if health.Version != catalog.ContractVersion {
		return fmt.Errorf("catalog API speaks contract %q, expected %q", health.Version, catalog.ContractVersion)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readStatusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func readStatusError(resp *http.Response) error {
	statusErr := &StatusError{Code: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && (payload.Error != "" || payload.Message != "") {
		statusErr.Kind = payload.Error
		statusErr.Message = payload.Message
	} else {
		statusErr.Message = strings.TrimSpace(string(data))
	}
	return statusErr
}

// decorate recomputes display fields so older servers without them still render.
func decorate(cards []catalog.Card) []catalog.Card {
	for i := range cards {
		cards[i] = catalog.Decorate(cards[i])
	}
	return cards
}
