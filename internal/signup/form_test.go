package signup

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSubmitter struct {
	release chan struct{}
	err     error
	calls   int
	names   []string
}

func (s *stubSubmitter) Submit(ctx context.Context, username string) (Entry, error) {
	s.calls++
	s.names = append(s.names, username)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return Entry{}, ctx.Err()
		}
	}
	return Entry{Username: username}, s.err
}

// settle polls until the in-flight request is collected.
func settle(t *testing.T, f *Form, now time.Time) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for f.Submitting() {
		if time.Now().After(deadline) {
			t.Fatal("request never finished")
		}
		f.Poll(now)
		time.Sleep(time.Millisecond)
	}
}

func TestForm_SuccessShowsLinksAfterDelay(t *testing.T) {
	stub := &stubSubmitter{release: make(chan struct{})}
	f := NewForm(stub, time.Second)
	f.Type([]rune(" ghost ")...)

	if !f.Submit(context.Background()) {
		t.Fatal("submit refused")
	}
	if status, kind := f.Status(); status != StatusSubmitting || kind != StatusPending || !f.Disabled() {
		t.Fatalf("status %q kind %d disabled %v", status, kind, f.Disabled())
	}
	if f.Submit(context.Background()) {
		t.Fatal("second submit while in flight must be ignored")
	}
	f.Type('x')
	if f.Username() != " ghost " {
		t.Fatal("typing while disabled changed the text")
	}

	close(stub.release)
	t0 := time.Unix(100, 0)
	settle(t, f, t0)
	if status, kind := f.Status(); status != StatusSuccess || kind != StatusOK {
		t.Fatalf("status %q", status)
	}
	if stub.calls != 1 || stub.names[0] != "ghost" {
		t.Fatalf("calls=%d names=%v", stub.calls, stub.names)
	}
	f.Poll(t0.Add(999 * time.Millisecond))
	if f.ShowLinks() {
		t.Fatal("links shown early")
	}
	f.Poll(t0.Add(time.Second))
	if !f.ShowLinks() || !f.Disabled() {
		t.Fatal("links should show and the prompt stay locked")
	}
}

func TestForm_FailuresReenableInput(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&StatusError{Code: 500, Body: "boom"}, StatusHTTPError},
		{errors.New("dial tcp: no route to host"), StatusNetworkError},
	}
	for _, tc := range cases {
		stub := &stubSubmitter{err: tc.err}
		f := NewForm(stub, time.Second)
		f.Type('a', 'b')
		f.Submit(context.Background())
		settle(t, f, time.Unix(0, 0))
		if status, kind := f.Status(); status != tc.want || kind != StatusFailed {
			t.Errorf("%v: status %q", tc.err, status)
		}
		if f.Disabled() {
			t.Errorf("%v: input should be re-enabled", tc.err)
		}
		if !f.Submit(context.Background()) {
			t.Errorf("%v: retry should be allowed", tc.err)
		}
		settle(t, f, time.Unix(0, 0))
	}
}

func TestForm_EditingRules(t *testing.T) {
	f := NewForm(&stubSubmitter{}, time.Second)
	if f.Submit(context.Background()) {
		t.Fatal("empty username must not submit")
	}
	f.Type(' ', ' ')
	if f.Submit(context.Background()) {
		t.Fatal("blank username must not submit")
	}
	f.Backspace()
	f.Backspace()
	f.Backspace()
	f.Paste("line\r\nbreak\x07")
	if f.Username() != "linebreak" {
		t.Fatalf("paste = %q", f.Username())
	}
	for i := 0; i < MaxUsernameLen*2; i++ {
		f.Type('z')
	}
	if n := len([]rune(f.Username())); n != MaxUsernameLen {
		t.Fatalf("length = %d", n)
	}
}

func TestForm_CloseCancelsInFlight(t *testing.T) {
	stub := &stubSubmitter{release: make(chan struct{})}
	f := NewForm(stub, time.Second)
	f.Type('a')
	f.Submit(context.Background())
	f.Close()
	settle(t, f, time.Unix(0, 0))
	if status, _ := f.Status(); status != StatusNetworkError {
		t.Fatalf("cancelled request status = %q", status)
	}
}
