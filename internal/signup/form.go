package signup

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode"
)

// Status lines shown under the prompt.
const (
	StatusSubmitting   = "Adding to waitlist..."
	StatusSuccess      = "Successfully added to waitlist!"
	StatusHTTPError    = "Error adding to waitlist. Please try again."
	StatusNetworkError = "Network error. Please check your connection."
)

// MaxUsernameLen caps what the prompt accepts.
const MaxUsernameLen = 64

// Submitter is the part of Client the form needs.
type Submitter interface {
	Submit(ctx context.Context, username string) (Entry, error)
}

// StatusKind classifies the status line for colouring.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusPending
	StatusOK
	StatusFailed
)

type result struct {
	err error
}

// Form is the terminal-style waitlist prompt. It is driven from the frame
// loop: edits and Submit are called on key events and Poll once per frame.
// The network call runs on its own goroutine and reports back through a
// channel, so the frame loop never blocks.
type Form struct {
	submitter  Submitter
	linksDelay time.Duration

	username   []rune
	status     string
	kind       StatusKind
	submitting bool
	disabled   bool
	linksAt    time.Time
	showLinks  bool
	done       chan result
	cancel     context.CancelFunc
}

// NewForm creates an empty, enabled prompt.
func NewForm(s Submitter, linksDelay time.Duration) *Form {
	return &Form{submitter: s, linksDelay: linksDelay}
}

// Username returns the current text.
func (f *Form) Username() string { return string(f.username) }

// Status returns the status line and its kind.
func (f *Form) Status() (string, StatusKind) { return f.status, f.kind }

// Disabled reports whether edits are blocked.
func (f *Form) Disabled() bool { return f.disabled }

// Submitting reports whether a request is in flight.
func (f *Form) Submitting() bool { return f.submitting }

// ShowLinks reports whether the community links are visible.
func (f *Form) ShowLinks() bool { return f.showLinks }

// Type appends printable runes.
func (f *Form) Type(rs ...rune) {
	if f.disabled {
		return
	}
	for _, r := range rs {
		if !unicode.IsPrint(r) || len(f.username) >= MaxUsernameLen {
			continue
		}
		f.username = append(f.username, r)
	}
}

// Paste inserts clipboard text, dropping line breaks.
func (f *Form) Paste(s string) {
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	f.Type([]rune(s)...)
}

// Backspace deletes the last rune.
func (f *Form) Backspace() {
	if f.disabled || len(f.username) == 0 {
		return
	}
	f.username = f.username[:len(f.username)-1]
}

// Submit starts a request if the username is non-empty and nothing is in
// flight. It returns false when it did nothing.
func (f *Form) Submit(ctx context.Context) bool {
	name := strings.TrimSpace(string(f.username))
	if name == "" || f.submitting || f.disabled {
		return false
	}
	f.submitting = true
	f.disabled = true
	f.status, f.kind = StatusSubmitting, StatusPending

	ctx, f.cancel = context.WithCancel(ctx)
	done := make(chan result, 1)
	f.done = done
	go func() {
		_, err := f.submitter.Submit(ctx, name)
		done <- result{err: err}
	}()
	return true
}

// Poll collects a finished request and runs the links timer.
func (f *Form) Poll(now time.Time) {
	if f.done != nil {
		select {
		case r := <-f.done:
			f.finish(r, now)
		default:
		}
	}
	if !f.linksAt.IsZero() && !f.showLinks && !now.Before(f.linksAt) {
		f.showLinks = true
	}
}

func (f *Form) finish(r result, now time.Time) {
	f.done = nil
	f.submitting = false
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if r.err == nil {
		f.status, f.kind = StatusSuccess, StatusOK
		f.linksAt = now.Add(f.linksDelay)
		return
	}
	log.Printf("signup: %v", r.err)
	var se *StatusError
	if errors.As(r.err, &se) {
		f.status = StatusHTTPError
	} else {
		f.status = StatusNetworkError
	}
	f.kind = StatusFailed
	f.disabled = false
}

// Close abandons an in-flight request.
func (f *Form) Close() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
