package internal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RetryOptions configures InvokeWithRetry
type RetryOptions struct {
	// MaxRetries is the total number of attempts, including the first
	MaxRetries int

	// Delay is the backoff base: the wait before retry k is Delay * 2^(k-1)
	Delay time.Duration

	// RetryableKinds lists error type names (as printed by %T) that are
	// retryable regardless of message content
	RetryableKinds []string

	// Context is attached to every log entry for this operation
	Context map[string]interface{}

	// Sleep overrides the backoff sleep, used by tests. When nil, a
	// context-aware timer sleep is used.
	Sleep func(ctx context.Context, d time.Duration) error
}

// transient message fragments, matched case-insensitively
var retryablePatterns = []string{
	"timeout",
	"timed out",
	"throttl",
	"rate limit",
	"502",
	"503",
	"504",
}

// IsRetryableError classifies an error as transient. An error is retryable
// when its type name appears in kinds, when it is an APIError carrying a
// 429/502/503/504 status, or when its message matches a transient pattern.
func IsRetryableError(err error, kinds []string) bool {
	if err == nil {
		return false
	}
	kind := fmt.Sprintf("%T", err)
	for _, k := range kinds {
		if k == kind || strings.TrimPrefix(kind, "*internal.") == k {
			return true
		}
	}
	if apiErr, ok := err.(*APIError); ok {
		switch apiErr.StatusCode {
		case 429, 502, 503, 504:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, p := range retryablePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// InvokeWithRetry executes op with bounded retries and exponential backoff.
// Retryable failures are reattempted up to opts.MaxRetries total attempts;
// non-retryable failures propagate after the first attempt. The wrapper holds
// no shared state and is safe to call from independent call sites.
func InvokeWithRetry[T any](ctx context.Context, logger *Logger, operation string, opts RetryOptions, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepWithContext
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("operation %s canceled: %w", operation, err)
		}

		logger.Log(LogLevelVerbose, "retry", fmt.Sprintf("executing %s", operation),
			attemptData(opts.Context, operation, attempt))

		result, err := op(ctx)
		if err == nil {
			logger.Log(LogLevelVerbose, "retry", fmt.Sprintf("%s succeeded", operation),
				attemptData(opts.Context, operation, attempt))
			return result, nil
		}
		lastErr = err

		if !IsRetryableError(err, opts.RetryableKinds) {
			logger.LogError("retry", fmt.Sprintf("%s failed with non-retryable error", operation),
				err, attemptData(opts.Context, operation, attempt))
			return zero, err
		}

		if attempt == maxRetries {
			break
		}

		wait := opts.Delay * (1 << (attempt - 1))
		logger.Log(LogLevelWarning, "retry",
			fmt.Sprintf("%s failed, retrying in %s: %v", operation, wait, err),
			attemptData(opts.Context, operation, attempt))
		if err := sleep(ctx, wait); err != nil {
			return zero, fmt.Errorf("operation %s canceled: %w", operation, err)
		}
	}

	logger.LogError("retry", fmt.Sprintf("%s failed after %d attempts", operation, maxRetries),
		lastErr, attemptData(opts.Context, operation, maxRetries))
	return zero, fmt.Errorf("operation %s failed after %d attempts: %w", operation, maxRetries, lastErr)
}

func attemptData(base map[string]interface{}, operation string, attempt int) map[string]interface{} {
	data := make(map[string]interface{}, len(base)+2)
	for k, v := range base {
		data[k] = v
	}
	data["operation"] = operation
	data["attempt"] = attempt
	return data
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
