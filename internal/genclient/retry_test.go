package genclient

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicyDelaySchedule(t *testing.T) {
	policy := newRetryPolicy(5, nil)

	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{name: "first attempt has no delay", attempt: 1, expected: 0},
		{name: "second attempt waits 1s", attempt: 2, expected: 1 * time.Second},
		{name: "third attempt waits 2s", attempt: 3, expected: 2 * time.Second},
		{name: "fourth attempt waits 4s", attempt: 4, expected: 4 * time.Second},
		{name: "schedule last entry repeats", attempt: 5, expected: 4 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := policy.delay(tt.attempt); got != tt.expected {
				t.Errorf("delay(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestRetryPolicyDo(t *testing.T) {
	transient := errors.New("transient")
	fatal := errors.New("fatal")

	tests := []struct {
		name         string
		maxAttempts  int
		outcomes     []error // nil means success on that attempt
		retryable    func(error) bool
		wantAttempts int
		wantErr      error
	}{
		{
			name:         "success on first attempt",
			maxAttempts:  3,
			outcomes:     []error{nil},
			retryable:    func(error) bool { return true },
			wantAttempts: 1,
		},
		{
			name:         "success after two failures",
			maxAttempts:  3,
			outcomes:     []error{transient, transient, nil},
			retryable:    func(error) bool { return true },
			wantAttempts: 3,
		},
		{
			name:         "exhausts all attempts",
			maxAttempts:  3,
			outcomes:     []error{transient, transient, transient},
			retryable:    func(error) bool { return true },
			wantAttempts: 3,
			wantErr:      transient,
		},
		{
			name:         "non-retryable error stops immediately",
			maxAttempts:  3,
			outcomes:     []error{fatal},
			retryable:    func(err error) bool { return !errors.Is(err, fatal) },
			wantAttempts: 1,
			wantErr:      fatal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := newRetryPolicy(tt.maxAttempts, nil)
			policy.sleep = func(context.Context, time.Duration) error { return nil }

			calls := 0
			fn := func() (string, error) {
				err := tt.outcomes[calls]
				calls++
				if err != nil {
					return "", err
				}
				return "ok", nil
			}

			_, attempts, err := policy.do(context.Background(), fn, tt.retryable)
			if attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", attempts, tt.wantAttempts)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryPolicySleepsScheduledBackoff(t *testing.T) {
	policy := newRetryPolicy(3, nil)

	var slept []time.Duration
	policy.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	transient := errors.New("transient")
	_, _, err := policy.do(context.Background(),
		func() (string, error) { return "", transient },
		func(error) bool { return true })
	if !errors.Is(err, transient) {
		t.Fatalf("err = %v, want %v", err, transient)
	}

	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("slept %d times, want %d", len(slept), len(want))
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i, slept[i], want[i])
		}
	}
}

func TestRetryPolicyCancelledDuringBackoff(t *testing.T) {
	policy := newRetryPolicy(3, []time.Duration{time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transient := errors.New("transient")
	_, _, err := policy.do(ctx,
		func() (string, error) { return "", transient },
		func(error) bool { return true })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
