// Package tools hosts the capability registry: the named operations the
// executor can dispatch plan steps to, plus the policy gate in front of
// them.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/planner"
)

// Handler executes one capability invocation.
type Handler func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error)

// Registry maps capability names to handlers. It satisfies the executor's
// invoker contract directly; wrap it with WithPolicy to gate invocations.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   *zap.Logger
}

var _ planner.Invoker = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register adds or replaces the handler for a capability name.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Invoke dispatches one capability call to its registered handler.
func (r *Registry) Invoke(ctx context.Context, tool string, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
	r.mu.RLock()
	h, ok := r.handlers[tool]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown capability: %s", tool)
	}

	result, err := h(ctx, params, qctx)
	if err != nil {
		return nil, fmt.Errorf("capability %s failed: %w", tool, err)
	}
	return result, nil
}

// Tools returns the registered capability names, sorted.
func (r *Registry) Tools() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
