package taskctx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

type KeyContext string

var (
	keyTaskToken = KeyContext("task_token")
	keyTaskKind  = KeyContext("task_kind")
	keyWorkerID  = KeyContext("worker_id")
	keyStartTime = KeyContext("task_start_time")
)

// TaskMetadata holds metadata for a background task execution
type TaskMetadata struct {
	Token     uuid.UUID
	Kind      string
	WorkerID  int
	StartTime time.Time
}

// TaskBegin initializes a task context with metadata and timeout.
// The returned context derives from the parent with a 5 minute deadline
// so a stuck downstream call cannot pin a worker forever.
func TaskBegin(parentCtx context.Context, token uuid.UUID, kind string, workerID int) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, 5*time.Minute)

	ctx = context.WithValue(ctx, keyTaskToken, token)
	ctx = context.WithValue(ctx, keyTaskKind, kind)
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// TaskRun executes the task function with panic recovery and exponential
// backoff retries. Non-retryable errors abort immediately.
func TaskRun(ctx context.Context, taskFunc func(context.Context) error) error {
	operation := func() error {
		var err error

		func() {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("panic recovered: %v", p)
				}
			}()

			if ctx.Err() != nil {
				err = backoff.Permanent(fmt.Errorf("context cancelled before task execution: %w", ctx.Err()))
				return
			}

			err = taskFunc(ctx)
		}()

		if err == nil {
			return nil
		}
		if _, permanent := err.(*backoff.PermanentError); permanent {
			return err
		}
		if !IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 2 * time.Second
	policy.MaxInterval = 30 * time.Second
	policy.MaxElapsedTime = 2 * time.Minute

	return backoff.Retry(operation, backoff.WithContext(policy, ctx))
}

// GetTaskToken extracts the task token from context
func GetTaskToken(ctx context.Context) (uuid.UUID, bool) {
	token, ok := ctx.Value(keyTaskToken).(uuid.UUID)
	return token, ok
}

// GetTaskKind extracts the task kind from context
func GetTaskKind(ctx context.Context) (string, bool) {
	kind, ok := ctx.Value(keyTaskKind).(string)
	return kind, ok
}

// GetWorkerID extracts the worker ID from context
func GetWorkerID(ctx context.Context) int {
	workerID, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return workerID
}

// GetStartTime extracts the task start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyStartTime).(time.Time)
	return startTime, ok
}

// GetTaskMetadata extracts all task metadata from context
func GetTaskMetadata(ctx context.Context) *TaskMetadata {
	token, _ := GetTaskToken(ctx)
	kind, _ := GetTaskKind(ctx)
	startTime, _ := GetStartTime(ctx)

	return &TaskMetadata{
		Token:     token,
		Kind:      kind,
		WorkerID:  GetWorkerID(ctx),
		StartTime: startTime,
	}
}

// IsRetryableError checks if an error should trigger a retry.
// Retryable errors include network errors, timeouts and rate limits.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Context errors (timeout, cancelled)
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
