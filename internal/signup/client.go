// Package signup posts waitlist entries to a SheetDB spreadsheet.
package signup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyUsername is returned when the trimmed username is empty.
var ErrEmptyUsername = errors.New("username is empty")

// TimeLayout is how the submission time is written to the sheet.
const TimeLayout = "Jan 02, 2006, 3:04 PM"

// maxErrorBody bounds how much of a failed response is kept.
const maxErrorBody = 4 << 10

// Entry is one spreadsheet row.
type Entry struct {
	Serial   int64  `json:"sl.no"`
	Username string `json:"username"`
	Time     string `json:"time"`
}

type payload struct {
	Data []Entry `json:"data"`
}

// StatusError is a non-2xx reply from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("signup: backend replied %d: %s", e.Code, e.Body)
}

// Client submits usernames to one endpoint.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Now      func() time.Time
}

// NewClient returns a client with its own timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: timeout},
		Now:      time.Now,
	}
}

// NewEntry builds the row for username at now. The serial is the Unix time
// in milliseconds.
func NewEntry(username string, now time.Time) Entry {
	return Entry{
		Serial:   now.UnixMilli(),
		Username: username,
		Time:     now.Format(TimeLayout),
	}
}

// Submit trims username and posts it. Transport failures are wrapped;
// backend rejections come back as *StatusError.
func (c *Client) Submit(ctx context.Context, username string) (Entry, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Entry{}, ErrEmptyUsername
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	entry := NewEntry(username, now())
	body, err := json.Marshal(payload{Data: []Entry{entry}})
	if err != nil {
		return Entry{}, fmt.Errorf("signup: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Entry{}, fmt.Errorf("signup: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Entry{}, fmt.Errorf("signup: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Printf("signup: status %d body %q", resp.StatusCode, msg)
		return Entry{}, &StatusError{Code: resp.StatusCode, Body: string(msg)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return entry, nil
}
