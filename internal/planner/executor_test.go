package planner

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// fakeInvoker returns canned results or errors per tool name and records
// the invocation order.
type fakeInvoker struct {
	mu      sync.Mutex
	calls   []string
	results map[string]*domain.StepResult
	errors  map[string]error
}

func newFakeInvoker() *fakeInvoker {
	return &fakeInvoker{
		results: map[string]*domain.StepResult{},
		errors:  map[string]error{},
	}
}

func (f *fakeInvoker) Invoke(ctx context.Context, tool string, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, tool)
	f.mu.Unlock()

	if err, ok := f.errors[tool]; ok {
		return nil, err
	}
	if res, ok := f.results[tool]; ok {
		return res, nil
	}
	return &domain.StepResult{Category: domain.CategoryGeneric, Generic: map[string]any{"tool": tool}}, nil
}

func (f *fakeInvoker) called(tool string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == tool {
			return true
		}
	}
	return false
}

func newTestExecutor(invoker Invoker, workers int) *Executor {
	return NewExecutor(invoker, workers, time.Second, zap.NewNop())
}

func chainPlan(priorities ...domain.StepPriority) *domain.ExecutionPlan {
	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusReady,
	}
	for i, prio := range priorities {
		step := &domain.Step{
			StepID:   fmt.Sprintf("step_%d", i),
			Name:     fmt.Sprintf("step %d", i),
			Tool:     fmt.Sprintf("tool_%d", i),
			Priority: prio,
			Status:   domain.StepStatusPending,
		}
		if i > 0 {
			step.DependsOn = []string{fmt.Sprintf("step_%d", i-1)}
		}
		plan.Steps = append(plan.Steps, step)
	}
	return plan
}

func TestExecuteCompletesChain(t *testing.T) {
	invoker := newFakeInvoker()
	e := newTestExecutor(invoker, 1)

	plan := chainPlan(domain.PriorityCritical, domain.PriorityHigh, domain.PriorityMedium)
	err := e.Execute(context.Background(), plan, domain.QueryContext{})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanStatusCompleted, plan.Status)
	for _, s := range plan.Steps {
		assert.Equal(t, domain.StepStatusCompleted, s.Status)
		assert.NotNil(t, s.Result)
	}
	assert.Equal(t, []string{"tool_0", "tool_1", "tool_2"}, invoker.calls)
	assert.NotNil(t, plan.StartedAt)
	assert.NotNil(t, plan.CompletedAt)
}

func TestExecuteCriticalFailureAbortsPlan(t *testing.T) {
	invoker := newFakeInvoker()
	invoker.errors["tool_0"] = fmt.Errorf("backend unavailable")
	e := newTestExecutor(invoker, 1)

	plan := chainPlan(domain.PriorityCritical, domain.PriorityHigh, domain.PriorityMedium)
	err := e.Execute(context.Background(), plan, domain.QueryContext{})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanStatusFailed, plan.Status)
	assert.Equal(t, domain.StepStatusFailed, plan.Steps[0].Status)
	assert.Equal(t, "backend unavailable", plan.Steps[0].Error)
	assert.Equal(t, domain.StepStatusSkipped, plan.Steps[1].Status)
	assert.Equal(t, domain.StepStatusSkipped, plan.Steps[2].Status)
	assert.False(t, invoker.called("tool_1"))
	assert.Contains(t, plan.Summary, "critical step")
}

func TestExecuteNonCriticalFailureContinues(t *testing.T) {
	invoker := newFakeInvoker()
	invoker.errors["tool_1"] = fmt.Errorf("transient error")
	e := newTestExecutor(invoker, 1)

	// Independent steps: the failure of a non-critical step must not halt
	// the others.
	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusReady,
		Steps: []*domain.Step{
			{StepID: "a", Tool: "tool_0", Priority: domain.PriorityHigh, Status: domain.StepStatusPending},
			{StepID: "b", Tool: "tool_1", Priority: domain.PriorityMedium, Status: domain.StepStatusPending},
			{StepID: "c", Tool: "tool_2", Priority: domain.PriorityMedium, Status: domain.StepStatusPending},
		},
	}
	err := e.Execute(context.Background(), plan, domain.QueryContext{})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanStatusCompleted, plan.Status)
	assert.Equal(t, domain.StepStatusCompleted, plan.Steps[0].Status)
	assert.Equal(t, domain.StepStatusFailed, plan.Steps[1].Status)
	assert.Equal(t, domain.StepStatusCompleted, plan.Steps[2].Status)
	assert.True(t, invoker.called("tool_2"))
}

func TestExecuteSkipsDependentsOfFailedStep(t *testing.T) {
	invoker := newFakeInvoker()
	invoker.errors["tool_0"] = fmt.Errorf("boom")
	e := newTestExecutor(invoker, 1)

	// tool_0 is non-critical but tool_1 depends on it.
	plan := chainPlan(domain.PriorityHigh, domain.PriorityMedium)
	err := e.Execute(context.Background(), plan, domain.QueryContext{})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanStatusCompleted, plan.Status)
	assert.Equal(t, domain.StepStatusFailed, plan.Steps[0].Status)
	assert.Equal(t, domain.StepStatusSkipped, plan.Steps[1].Status)
	assert.False(t, invoker.called("tool_1"))
}

func TestExecuteIndependentStepsRunConcurrently(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0

	blocking := invokerFunc(func(ctx context.Context, tool string, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return &domain.StepResult{Category: domain.CategoryGeneric}, nil
	})
	e := newTestExecutor(blocking, 4)

	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusReady,
		Steps: []*domain.Step{
			{StepID: "a", Tool: "t0", Priority: domain.PriorityHigh, Status: domain.StepStatusPending},
			{StepID: "b", Tool: "t1", Priority: domain.PriorityHigh, Status: domain.StepStatusPending},
			{StepID: "c", Tool: "t2", Priority: domain.PriorityHigh, Status: domain.StepStatusPending},
		},
	}
	err := e.Execute(context.Background(), plan, domain.QueryContext{})
	require.NoError(t, err)

	assert.Equal(t, domain.PlanStatusCompleted, plan.Status)
	mu.Lock()
	defer mu.Unlock()
	assert.Greater(t, peak, 1, "independent steps should overlap")
}

func TestExecuteCanceledContext(t *testing.T) {
	invoker := newFakeInvoker()
	e := newTestExecutor(invoker, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := chainPlan(domain.PriorityHigh)
	err := e.Execute(ctx, plan, domain.QueryContext{})
	assert.Error(t, err)
	assert.Equal(t, domain.PlanStatusFailed, plan.Status)
}

// invokerFunc adapts a function to the Invoker interface.
type invokerFunc func(ctx context.Context, tool string, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error)

func (f invokerFunc) Invoke(ctx context.Context, tool string, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
	return f(ctx, tool, params, qctx)
}
