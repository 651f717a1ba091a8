package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ConfigError indicates invalid agent, skill, or provider configuration.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Msg, e.Err)
	}
	return "configuration: " + e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ExecutionError indicates a failed agent execution.
type ExecutionError struct {
	Agent string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("agent %s execution failed: %v", e.Agent, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// TimeoutError indicates an agent run exceeded its configured timeout.
type TimeoutError struct {
	Agent string
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("agent %s exceeded timeout of %s", e.Agent, e.Limit)
}

func (e *TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// retriableFragments are error message markers for transient failures.
// Mirrors provider-side classification: rate limits, server errors, and
// network-level interruptions are worth retrying; everything else is not.
var retriableFragments = []string{
	"timeout",
	"rate limit",
	"status 429",
	"status 5",
	"too many requests",
	"service unavailable",
	"connection reset",
	"connection refused",
	"temporary failure",
	"mock client configured to fail", // mock provider, used in tests
}

// Retriable reports whether an error represents a transient failure
// that a bounded retry may recover from.
func Retriable(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation is a caller decision, never retried.
	if errors.Is(err, context.Canceled) {
		return false
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range retriableFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

// statusFor maps an execution error to a result status.
func statusFor(err error) Status {
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) || errors.Is(err, context.DeadlineExceeded) {
		return StatusTimeout
	}
	return StatusError
}
