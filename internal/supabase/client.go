package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/faizmokh/gideon/internal/journal"
	"github.com/faizmokh/gideon/internal/logger"
)

const (
	defaultTable      = "blog_entries"
	defaultDateColumn = "date"
	defaultTimeout    = 10 * time.Second
	restPath          = "/rest/v1/"
	errorBodyLimit    = 512
)

// RequestIDHeader carries the per-fetch correlation id.
const RequestIDHeader = "X-Request-Id"

// Config describes how to reach the hosted table.
type Config struct {
	URL        string
	Key        string
	Table      string
	DateColumn string
	Timeout    time.Duration
	HTTPClient *http.Client
	Log        *logger.Logger
}

// Client queries a PostgREST endpoint for date-keyed entries.
type Client struct {
	baseURL    string
	key        string
	table      string
	dateColumn string
	http       *http.Client
	log        *logger.Logger
}

// New validates cfg and returns a ready Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, errors.New("supabase: url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("supabase: invalid url %q: %w", cfg.URL, err)
	}

	table := cfg.Table
	if table == "" {
		table = defaultTable
	}
	column := cfg.DateColumn
	if column == "" {
		column = defaultDateColumn
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		baseURL:    base,
		key:        cfg.Key,
		table:      table,
		dateColumn: column,
		http:       httpClient,
		log:        log,
	}, nil
}

// Entry fetches the single row whose date column equals the ISO key of date.
func (c *Client) Entry(ctx context.Context, date time.Time) (journal.Entry, error) {
	key := journal.Key(date)
	requestID := uuid.NewString()

	entry, err := c.fetch(ctx, key, requestID)
	if err != nil {
		if journal.IsNotFound(err) {
			c.log.Debugw("entry_not_found", "date", key, "request_id", requestID)
			return journal.Entry{}, err
		}
		return journal.Entry{}, &journal.FetchError{Date: key, Err: err}
	}
	c.log.Debugw("entry_loaded", "date", key, "request_id", requestID)
	return entry, nil
}

func (c *Client) fetch(ctx context.Context, key, requestID string) (journal.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL(key), nil)
	if err != nil {
		return journal.Entry{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.key != "" {
		req.Header.Set("apikey", c.key)
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return journal.Entry{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return journal.Entry{}, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: strings.TrimSpace(string(body))}
	}

	rows, err := decodeRows(resp.Body)
	if err != nil {
		return journal.Entry{}, err
	}
	switch len(rows) {
	case 0:
		return journal.Entry{}, journal.ErrEntryNotFound
	case 1:
		entry := rows[0].toEntry()
		if entry.Date == "" {
			entry.Date = key
		}
		return entry, nil
	default:
		return journal.Entry{}, journal.ErrMultipleEntries
	}
}

func (c *Client) queryURL(key string) string {
	q := url.Values{}
	q.Set("select", "*")
	q.Set(c.dateColumn, "eq."+key)
	q.Set("limit", "2")
	return c.baseURL + restPath + url.PathEscape(c.table) + "?" + q.Encode()
}

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("supabase API error: %s", e.Status)
	}
	return fmt.Sprintf("supabase API error: %s (%s)", e.Status, e.Body)
}

type row struct {
	ID        int64           `json:"id"`
	Date      string          `json:"date"`
	Content   *string         `json:"content"`
	CreatedAt json.RawMessage `json:"created_at"`
}

func (r row) toEntry() journal.Entry {
	entry := journal.Entry{ID: r.ID, Date: r.Date}
	if r.Content != nil {
		entry.Content = *r.Content
	}
	if len(r.CreatedAt) > 0 {
		var raw string
		if err := json.Unmarshal(r.CreatedAt, &raw); err == nil {
			if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
				entry.CreatedAt = parsed
			}
		}
	}
	return entry
}

func decodeRows(r io.Reader) ([]row, error) {
	var rows []row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode supabase response: %w", err)
	}
	return rows, nil
}
