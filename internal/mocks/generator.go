package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/copyforge-api/internal/generation"
)

// UpstreamResult is one scripted outcome of MockUpstream.Attempt.
type UpstreamResult struct {
	Text string
	Err  error
}

// MockUpstream implements generation.Upstream by replaying Results in order.
// Once Results is exhausted every further call returns the last entry.
type MockUpstream struct {
	// AttemptFn, when set, replaces the scripted results.
	AttemptFn func(ctx context.Context, strategy generation.Strategy, prompt, credential string) (string, error)

	Results []UpstreamResult

	mu         sync.Mutex
	strategies []generation.Strategy
	prompts    []string
}

var _ generation.Upstream = (*MockUpstream)(nil)

// Attempt implements generation.Upstream
func (m *MockUpstream) Attempt(
	ctx context.Context,
	strategy generation.Strategy,
	prompt, credential string,
) (string, error) {
	m.mu.Lock()
	call := len(m.strategies)
	m.strategies = append(m.strategies, strategy)
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.AttemptFn != nil {
		return m.AttemptFn(ctx, strategy, prompt, credential)
	}
	if len(m.Results) == 0 {
		return "", nil
	}
	if call >= len(m.Results) {
		call = len(m.Results) - 1
	}
	r := m.Results[call]
	return r.Text, r.Err
}

// Calls returns the strategies attempted so far, in order.
func (m *MockUpstream) Calls() []generation.Strategy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.Strategy(nil), m.strategies...)
}

// Prompts returns the prompts received so far, in order.
func (m *MockUpstream) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
