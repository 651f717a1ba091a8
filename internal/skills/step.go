// Package skills runs multi-agent workflows: ordered chains of agents
// where each step consumes the results of the steps before it.
package skills

import (
	"context"
	"sync"

	"github.com/jayleekr/hypeprooflab/internal/agent"
)

// Step is a single unit of a skill.
type Step interface {
	// Name returns the unique step identifier.
	Name() string

	// Dependencies returns the names of steps that must complete first.
	Dependencies() []string

	// Run executes the step. Upstream results are available in state.
	Run(ctx context.Context, state *State) (*agent.Result, error)
}

// State is the shared workspace for a skill run. Steps read upstream
// results from it and the runner records each completed step into it.
type State struct {
	mu      sync.RWMutex
	topic   string
	data    map[string]any
	results map[string]*agent.Result
}

// NewState creates a run state for a topic. The data map carries
// caller-supplied parameters (tone, audience, format) and is shared by
// every step.
func NewState(topic string, data map[string]any) *State {
	if data == nil {
		data = make(map[string]any)
	}
	return &State{
		topic:   topic,
		data:    data,
		results: make(map[string]*agent.Result),
	}
}

// Topic returns the subject of the run.
func (s *State) Topic() string {
	return s.topic
}

// Data returns a snapshot of the shared data map, including the outputs
// of completed steps keyed by step name.
func (s *State) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.data)+len(s.results))
	for k, v := range s.data {
		out[k] = v
	}
	for name, res := range s.results {
		if res.Ok() {
			out[name] = res.Output
		}
	}
	return out
}

// Result returns the recorded result for a completed step.
func (s *State) Result(name string) (*agent.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[name]
	return res, ok
}

// record stores a completed step's result.
func (s *State) record(name string, res *agent.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[name] = res
}

// AgentStep adapts an agent runner into a skill step.
type AgentStep struct {
	runner *agent.Runner
	deps   []string
}

// NewAgentStep wraps a runner with its step dependencies.
func NewAgentStep(runner *agent.Runner, deps []string) *AgentStep {
	return &AgentStep{runner: runner, deps: deps}
}

func (s *AgentStep) Name() string {
	return s.runner.Name()
}

func (s *AgentStep) Dependencies() []string {
	return s.deps
}

// Run executes the agent against the run topic with upstream results in
// the data map.
func (s *AgentStep) Run(ctx context.Context, state *State) (*agent.Result, error) {
	return s.runner.Run(ctx, state.Topic(), state.Data()), nil
}

// Verify interface
var _ Step = (*AgentStep)(nil)
