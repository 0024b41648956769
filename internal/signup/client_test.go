package signup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC)

func TestNewEntry_Format(t *testing.T) {
	e := NewEntry("ghost", fixedNow)
	if e.Time != "Mar 07, 2025, 3:04 PM" {
		t.Errorf("time = %q", e.Time)
	}
	if e.Serial != fixedNow.UnixMilli() {
		t.Errorf("serial = %d", e.Serial)
	}
}

func TestSubmit_PostsSheetPayload(t *testing.T) {
	var got map[string][]map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("method %s content-type %q", r.Method, r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad body %s: %v", body, err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"created":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.Now = func() time.Time { return fixedNow }
	entry, err := c.Submit(context.Background(), "  night_owl  ")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Username != "night_owl" {
		t.Fatalf("username not trimmed: %q", entry.Username)
	}
	rows := got["data"]
	if len(rows) != 1 {
		t.Fatalf("rows = %v", got)
	}
	row := rows[0]
	if row["username"] != "night_owl" || row["time"] != "Mar 07, 2025, 3:04 PM" {
		t.Fatalf("row = %v", row)
	}
	if serial, ok := row["sl.no"].(float64); !ok || int64(serial) != fixedNow.UnixMilli() {
		t.Fatalf("sl.no = %v", row["sl.no"])
	}
}

func TestSubmit_EmptyUsername(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", time.Second)
	if _, err := c.Submit(context.Background(), "   "); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
}

func TestSubmit_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Submit(context.Background(), "x")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusTooManyRequests || !strings.Contains(se.Body, "quota") {
		t.Fatalf("expected 429 StatusError, got %v", err)
	}
}

func TestSubmit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Submit(context.Background(), "x")
	var se *StatusError
	if err == nil || errors.As(err, &se) {
		t.Fatalf("expected a transport error, got %v", err)
	}
}
