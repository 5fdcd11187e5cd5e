package httputil

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	apperrors "github.com/varun-a1/odlparent/pkg/errors"
)

func TestRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryRetriesRetryable(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("Retry error = %v, want permanent", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on permanent error)", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: errors.New("always failing")}
	})
	if err == nil {
		t.Fatal("Retry should return last error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Minute, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry error = %v, want context.Canceled", err)
	}
}

func TestCheckStatus(t *testing.T) {
	if err := CheckStatus(http.StatusOK); err != nil {
		t.Errorf("200 should be nil, got %v", err)
	}

	err := CheckStatus(http.StatusNotFound)
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("404 code = %q, want NOT_FOUND", apperrors.GetCode(err))
	}

	err = CheckStatus(http.StatusBadGateway)
	if !isRetryable(err) {
		t.Error("5xx should be retryable")
	}
	if !apperrors.Is(err, apperrors.ErrCodeNetwork) {
		t.Errorf("5xx code = %q, want NETWORK_ERROR", apperrors.GetCode(err))
	}

	if isRetryable(CheckStatus(http.StatusForbidden)) {
		t.Error("403 should not be retryable")
	}
}
