package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		err  error
		kind Kind
	}{
		{Fetch("schedule", cause), KindFetch},
		{NoData("latest event", nil), KindNoData},
		{Malformed("standings", cause), KindMalformed},
		{fmt.Errorf("outer: %w", Malformed("results", cause)), KindMalformed},
		{cause, KindFetch},
		{context.DeadlineExceeded, KindFetch},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.kind {
			t.Fatalf("KindOf(%v) = %s, want %s", tc.err, got, tc.kind)
		}
		if !IsKind(tc.err, tc.kind) {
			t.Fatalf("expected IsKind(%v, %s)", tc.err, tc.kind)
		}
	}

	if KindOf(nil) != "" || IsKind(nil, KindFetch) {
		t.Fatalf("expected nil error to have no kind")
	}
}

func TestErrorUnwrapsAndFormats(t *testing.T) {
	cause := errors.New("boom")
	err := Fetch("schedule", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach cause")
	}
	if err.Error() != "schedule: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if got := NoData("latest event", nil).Error(); got != "latest event: no_data" {
		t.Fatalf("unexpected no-data message %q", got)
	}
}
