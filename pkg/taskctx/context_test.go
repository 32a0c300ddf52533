package taskctx

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestTaskBeginCarriesMetadata(t *testing.T) {
	token := uuid.New()
	ctx, cancel := TaskBegin(context.Background(), token, "transcribe_chunk", 3)
	defer cancel()

	gotToken, ok := GetTaskToken(ctx)
	if !ok || gotToken != token {
		t.Fatalf("unexpected token %v (ok=%v)", gotToken, ok)
	}
	kind, ok := GetTaskKind(ctx)
	if !ok || kind != "transcribe_chunk" {
		t.Fatalf("unexpected kind %q (ok=%v)", kind, ok)
	}
	if GetWorkerID(ctx) != 3 {
		t.Fatalf("unexpected worker id %d", GetWorkerID(ctx))
	}
	if _, ok := GetStartTime(ctx); !ok {
		t.Fatal("missing start time")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		t.Fatal("task context should carry a deadline")
	}
}

func TestGetWorkerIDMissing(t *testing.T) {
	if GetWorkerID(context.Background()) != -1 {
		t.Fatal("missing worker id should report -1")
	}
}

func TestTaskRunSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := TaskRun(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected single call, got %d", calls)
	}
}

func TestTaskRunPermanentErrorNoRetry(t *testing.T) {
	calls := 0
	wantErr := errors.New("record not found")
	err := TaskRun(context.Background(), func(ctx context.Context) error {
		calls++
		return wantErr
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("non-retryable error should not retry, got %d calls", calls)
	}
}

func TestTaskRunRecoversPanic(t *testing.T) {
	err := TaskRun(context.Background(), func(ctx context.Context) error {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
}

func TestTaskRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := TaskRun(ctx, func(ctx context.Context) error {
		calls++
		return nil
	})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if calls != 0 {
		t.Fatalf("task should not run after cancellation, got %d calls", calls)
	}
}

func TestIsRetryableError(t *testing.T) {
	retryable := []error{
		errors.New("connection refused"),
		errors.New("dial tcp: i/o timeout"),
		errors.New("HTTP 429 Too Many Requests"),
		errors.New("upstream returned status 503: service unavailable"),
		errors.New("temporary failure in name resolution"),
		errors.New("context deadline exceeded"),
	}
	for _, err := range retryable {
		if !IsRetryableError(err) {
			t.Fatalf("expected retryable: %v", err)
		}
	}

	permanent := []error{
		nil,
		errors.New("record not found"),
		errors.New("invalid payload"),
	}
	for _, err := range permanent {
		if IsRetryableError(err) {
			t.Fatalf("expected non-retryable: %v", err)
		}
	}
}
