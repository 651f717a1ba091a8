package skills

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jayleekr/hypeprooflab/internal/agent"
	"github.com/jayleekr/hypeprooflab/internal/config"
	"github.com/jayleekr/hypeprooflab/internal/registry"
)

// SkillResult is the combined outcome of a skill run.
type SkillResult struct {
	Skill         string                   `json:"skill"`
	Status        agent.Status             `json:"status"`
	Steps         map[string]*agent.Result `json:"steps"`
	Order         []string                 `json:"order"`
	Usage         agent.TokenUsage         `json:"token_usage"`
	ExecutionTime time.Duration            `json:"execution_time"`
	// QualityThreshold is carried from config for reporting; it does
	// not gate the result.
	QualityThreshold float64 `json:"quality_threshold,omitempty"`
	ErrorMessage     string  `json:"error_message,omitempty"`
}

// Ok reports whether every step completed successfully.
func (r *SkillResult) Ok() bool {
	return r.Status == agent.StatusSuccess
}

// Runner executes configured skills against an agent registry.
type Runner struct {
	agents *registry.Registry
	logger *slog.Logger
}

// NewRunner creates a skill runner.
func NewRunner(agents *registry.Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{agents: agents, logger: logger}
}

// Build assembles the step registry for a skill. Sequential skills chain
// each agent onto the previous one; parallel skills register every agent
// with no dependencies so they all run against the topic directly.
func (r *Runner) Build(cfg config.SkillCfg) (*Registry, error) {
	steps := NewRegistry()

	var prev string
	for _, name := range cfg.Agents {
		runner, err := r.agents.Get(name)
		if err != nil {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("skill %q", cfg.Name), Err: err}
		}

		var deps []string
		if !cfg.Parallel && prev != "" {
			deps = []string{prev}
		}
		if err := steps.Register(NewAgentStep(runner, deps)); err != nil {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("skill %q", cfg.Name), Err: err}
		}
		prev = name
	}

	if err := steps.Validate(); err != nil {
		return nil, &agent.ConfigError{Msg: fmt.Sprintf("skill %q", cfg.Name), Err: err}
	}
	return steps, nil
}

// Run executes a skill for a topic. Steps run in dependency order;
// independent steps run concurrently. The run stops at the first failed
// step, and its status is carried into the skill result.
func (r *Runner) Run(ctx context.Context, cfg config.SkillCfg, topic string, data map[string]any) (*SkillResult, error) {
	steps, err := r.Build(cfg)
	if err != nil {
		return nil, err
	}

	ordered, err := steps.GetOrdered()
	if err != nil {
		return nil, &agent.ConfigError{Msg: fmt.Sprintf("skill %q", cfg.Name), Err: err}
	}

	start := time.Now()
	state := NewState(topic, data)

	result := &SkillResult{
		Skill:            cfg.Name,
		Status:           agent.StatusSuccess,
		Steps:            make(map[string]*agent.Result, len(ordered)),
		QualityThreshold: cfg.QualityThreshold,
	}

	r.logger.Info("skill run started",
		"skill", cfg.Name,
		"topic", topic,
		"steps", len(ordered),
		"parallel", cfg.Parallel,
	)

	for _, batch := range batches(ordered) {
		if err := r.runBatch(ctx, batch, state, result); err != nil {
			break
		}
	}

	result.ExecutionTime = time.Since(start)
	for _, res := range result.Steps {
		result.Usage.Add(res.Usage)
	}

	r.logger.Info("skill run completed",
		"skill", cfg.Name,
		"status", string(result.Status),
		"steps_completed", len(result.Steps),
		"execution_time", result.ExecutionTime,
		"total_tokens", result.Usage.TotalTokens,
	)

	return result, nil
}

// runBatch executes one dependency level. A batch of one runs inline;
// larger batches fan out across goroutines.
func (r *Runner) runBatch(ctx context.Context, batch []Step, state *State, result *SkillResult) error {
	if len(batch) == 1 {
		return r.runStep(ctx, batch[0], state, result, &sync.Mutex{})
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		batchErr error
	)
	for _, step := range batch {
		wg.Add(1)
		go func(s Step) {
			defer wg.Done()
			if err := r.runStep(ctx, s, state, result, &mu); err != nil {
				mu.Lock()
				if batchErr == nil {
					batchErr = err
				}
				mu.Unlock()
			}
		}(step)
	}
	wg.Wait()
	return batchErr
}

func (r *Runner) runStep(ctx context.Context, step Step, state *State, result *SkillResult, mu *sync.Mutex) error {
	res, err := step.Run(ctx, state)
	if err != nil {
		res = &agent.Result{
			Status:       agent.StatusError,
			ErrorMessage: err.Error(),
		}
	}

	state.record(step.Name(), res)

	mu.Lock()
	result.Steps[step.Name()] = res
	result.Order = append(result.Order, step.Name())
	if !res.Ok() {
		result.Status = res.Status
		result.ErrorMessage = fmt.Sprintf("step %s: %s", step.Name(), res.ErrorMessage)
	}
	mu.Unlock()

	if !res.Ok() {
		return fmt.Errorf("step %s failed: %s", step.Name(), res.ErrorMessage)
	}
	return nil
}

// batches splits topologically ordered steps into dependency levels.
// Every step in a level has all of its dependencies in earlier levels.
func batches(ordered []Step) [][]Step {
	var levels [][]Step
	level := make(map[string]int)

	for _, step := range ordered {
		depth := 0
		for _, dep := range step.Dependencies() {
			if d, ok := level[dep]; ok && d+1 > depth {
				depth = d + 1
			}
		}
		level[step.Name()] = depth

		for len(levels) <= depth {
			levels = append(levels, nil)
		}
		levels[depth] = append(levels[depth], step)
	}
	return levels
}
