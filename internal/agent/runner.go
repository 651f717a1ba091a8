package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/jayleekr/hypeprooflab/internal/providers"
)

const (
	// DefaultMaxRetries bounds the retry loop when the config omits it.
	DefaultMaxRetries = 3

	// DefaultTimeout is the per-call deadline when the config omits it.
	DefaultTimeout = 300 * time.Second
)

// Definition describes an agent: its prompts, model selection, and
// execution policy. Definitions are built from YAML config by the
// factories in internal/agents.
type Definition struct {
	// Identity
	Name string // e.g., "research"
	Role string // Human-readable role description

	// Prompting
	SystemPrompt string
	// BuildPrompt renders the user prompt for a task. When nil, the task
	// string is sent verbatim.
	BuildPrompt func(task string, data map[string]any) string

	// Tools the hosted service may use on our behalf. Informational:
	// execution is delegated entirely to the provider.
	Tools []string

	// Model selection and generation parameters
	Model       string
	MaxTokens   int
	Temperature float64

	// Execution policy
	MaxRetries int
	Timeout    time.Duration

	// Structured output
	OutputSchema json.RawMessage
	// ParseOutput converts the raw chat result into the agent's typed
	// output. The data map is the same one passed to Run. When nil,
	// Result.Output is the response text.
	ParseOutput func(res *providers.ChatResult, data map[string]any) (any, error)
}

// Runner executes a single agent definition against an LLM client.
// It owns timeout enforcement, bounded retries, and result classification;
// a Result is always returned, never a panic or a bare error.
type Runner struct {
	def    Definition
	client providers.LLMClient
	logger *slog.Logger
}

// NewRunner creates a runner after validating the definition.
func NewRunner(def Definition, client providers.LLMClient, logger *slog.Logger) (*Runner, error) {
	if def.Name == "" {
		return nil, &ConfigError{Msg: "agent name is required"}
	}
	if def.SystemPrompt == "" {
		return nil, &ConfigError{Msg: "agent " + def.Name + ": system prompt is required"}
	}
	if client == nil {
		return nil, &ConfigError{Msg: "agent " + def.Name + ": LLM client is required"}
	}
	if def.MaxRetries <= 0 {
		def.MaxRetries = DefaultMaxRetries
	}
	if def.Timeout <= 0 {
		def.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		def:    def,
		client: client,
		logger: logger.With("agent", def.Name),
	}, nil
}

// Name returns the agent identifier.
func (r *Runner) Name() string {
	return r.def.Name
}

// Definition returns a copy of the runner's definition.
func (r *Runner) Definition() Definition {
	return r.def
}

// Run executes the agent for a task. The optional data map carries
// upstream results (e.g., research findings for the analysis agent).
//
// Run never returns nil: failures are classified into the result's
// Status and ErrorMessage fields.
func (r *Runner) Run(ctx context.Context, task string, data map[string]any) *Result {
	start := time.Now()
	runID := uuid.New().String()

	r.logger.Info("agent run started",
		"run_id", runID,
		"task", truncate(task, 100),
	)

	prompt := task
	if r.def.BuildPrompt != nil {
		prompt = r.def.BuildPrompt(task, data)
	}

	attempts := 0
	var chatRes *providers.ChatResult

	err := retry.Do(
		func() error {
			attempts++
			res, err := r.callOnce(ctx, runID, prompt)
			if err != nil {
				return err
			}
			chatRes = res
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(r.def.MaxRetries)),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(Retriable),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn("agent run retrying", "run_id", runID, "attempt", n+1, "error", err)
		}),
	)

	elapsed := time.Since(start)

	if err != nil {
		status := statusFor(err)
		r.logger.Error("agent run failed",
			"run_id", runID,
			"status", string(status),
			"attempts", attempts,
			"execution_time", elapsed,
			"error", err,
		)
		return &Result{
			Status:        status,
			ExecutionTime: elapsed,
			Attempts:      attempts,
			ErrorMessage:  err.Error(),
		}
	}

	output := any(chatRes.Content)
	if r.def.ParseOutput != nil {
		parsed, perr := r.def.ParseOutput(chatRes, data)
		if perr != nil {
			wrapped := &ExecutionError{Agent: r.def.Name, Err: perr}
			r.logger.Error("agent output parsing failed",
				"run_id", runID,
				"attempts", attempts,
				"error", perr,
			)
			return &Result{
				Status:        StatusError,
				ExecutionTime: elapsed,
				Attempts:      attempts,
				ErrorMessage:  wrapped.Error(),
			}
		}
		output = parsed
	}

	usage := &TokenUsage{
		InputTokens:  chatRes.PromptTokens,
		OutputTokens: chatRes.CompletionTokens,
		TotalTokens:  chatRes.TotalTokens,
		CostUSD:      chatRes.CostUSD,
	}
	usage.Normalize()

	r.logger.Info("agent run completed",
		"run_id", runID,
		"status", string(StatusSuccess),
		"attempts", attempts,
		"execution_time", elapsed,
		"total_tokens", usage.TotalTokens,
	)

	return &Result{
		Status:        StatusSuccess,
		Output:        output,
		Usage:         usage,
		ExecutionTime: elapsed,
		Attempts:      attempts,
	}
}

// callOnce performs a single provider call under the per-call timeout.
func (r *Runner) callOnce(ctx context.Context, runID, prompt string) (*providers.ChatResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.def.Timeout)
	defer cancel()

	req := &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: r.def.SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Model:       r.def.Model,
		Temperature: r.def.Temperature,
		MaxTokens:   r.def.MaxTokens,
		RequestID:   runID,
	}
	if len(r.def.OutputSchema) > 0 {
		req.ResponseFormat = &providers.ResponseFormat{
			Type:       "json_schema",
			JSONSchema: r.def.OutputSchema,
		}
	}

	res, err := r.client.Chat(callCtx, req)
	if err != nil {
		// Distinguish our per-call deadline from caller cancellation.
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &TimeoutError{Agent: r.def.Name, Limit: r.def.Timeout}
		}
		return nil, &ExecutionError{Agent: r.def.Name, Err: err}
	}

	if len(r.def.OutputSchema) > 0 && len(res.ParsedJSON) > 0 {
		if verr := providers.ValidateStructuredJSON(r.def.OutputSchema, res.ParsedJSON); verr != nil {
			return nil, &ExecutionError{Agent: r.def.Name, Err: verr}
		}
	}

	return res, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
