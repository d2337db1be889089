package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// Invoker executes a named capability with its parameter map. The result
// shape is category-specific; errors are recovered per step.
type Invoker interface {
	Invoke(ctx context.Context, tool string, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error)
}

// Executor runs a plan's steps. Steps whose dependencies are all completed
// run concurrently on a bounded worker pool; a failing critical step
// cancels the pool and fails the plan, a non-critical failure does not.
type Executor struct {
	invoker     Invoker
	workers     int
	toolTimeout time.Duration
	logger      *zap.Logger
}

// NewExecutor creates an executor. workers < 1 means sequential execution.
func NewExecutor(invoker Invoker, workers int, toolTimeout time.Duration, logger *zap.Logger) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		invoker:     invoker,
		workers:     workers,
		toolTimeout: toolTimeout,
		logger:      logger,
	}
}

// Execute runs the plan to a settled state: every step ends completed,
// failed or skipped, and the plan ends completed or failed. The plan is
// mutated in place; the returned error is non-nil only when the caller's
// context was canceled.
func (e *Executor) Execute(ctx context.Context, plan *domain.ExecutionPlan, qctx domain.QueryContext) error {
	now := time.Now()
	plan.Status = domain.PlanStatusExecuting
	plan.StartedAt = &now

	completed := make(map[string]bool, len(plan.Steps))
	settled := make(map[string]bool, len(plan.Steps))

	for {
		if err := ctx.Err(); err != nil {
			e.finish(plan, domain.PlanStatusFailed, "execution canceled")
			return err
		}

		ready := e.collectReady(plan, completed, settled)
		if len(ready) == 0 {
			// Steps are in dependency order, so collectReady has already
			// cascaded skips; anything still pending can never run.
			e.skipPending(plan)
			break
		}

		abort := e.runWave(ctx, ready, qctx)

		for _, s := range ready {
			settled[s.StepID] = true
			if s.Status == domain.StepStatusCompleted {
				completed[s.StepID] = true
			}
		}

		if abort != nil {
			e.skipPending(plan)
			e.finish(plan, domain.PlanStatusFailed, abort.Error())
			return nil
		}
	}

	e.finish(plan, domain.PlanStatusCompleted, executionSummary(plan))
	return nil
}

// collectReady returns pending steps whose dependencies are all completed.
// Steps with a dependency that settled without completing are marked
// skipped rather than attempted.
func (e *Executor) collectReady(plan *domain.ExecutionPlan, completed, settled map[string]bool) []*domain.Step {
	var ready []*domain.Step
	for _, s := range plan.Steps {
		if s.Status != domain.StepStatusPending {
			continue
		}
		runnable := true
		for _, dep := range s.DependsOn {
			if completed[dep] {
				continue
			}
			runnable = false
			if settled[dep] {
				s.Status = domain.StepStatusSkipped
				settled[s.StepID] = true
				e.logger.Debug("step skipped, dependency unmet",
					zap.String("step_id", s.StepID), zap.String("dependency", dep))
			}
			break
		}
		if runnable && s.Status == domain.StepStatusPending {
			ready = append(ready, s)
		}
	}
	return ready
}

// runWave executes one batch of ready steps on the worker pool. It returns
// a non-nil abort error when a critical step failed.
func (e *Executor) runWave(ctx context.Context, wave []*domain.Step, qctx domain.QueryContext) error {
	g, waveCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, step := range wave {
		step := step
		g.Go(func() error {
			if waveCtx.Err() != nil {
				step.Status = domain.StepStatusSkipped
				return nil
			}
			e.runStep(waveCtx, step, qctx)
			if step.Status == domain.StepStatusFailed && step.Priority == domain.PriorityCritical {
				return fmt.Errorf("critical step %q failed: %s", step.Name, step.Error)
			}
			return nil
		})
	}
	return g.Wait()
}

func (e *Executor) runStep(ctx context.Context, step *domain.Step, qctx domain.QueryContext) {
	step.Status = domain.StepStatusRunning

	stepCtx := ctx
	if e.toolTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, e.toolTimeout)
		defer cancel()
	}

	result, err := e.invoker.Invoke(stepCtx, step.Tool, step.Params, qctx)
	if err != nil {
		step.Status = domain.StepStatusFailed
		step.Error = err.Error()
		e.logger.Warn("step failed",
			zap.String("step_id", step.StepID),
			zap.String("tool", step.Tool),
			zap.Error(err),
		)
		return
	}
	step.Result = result
	step.Status = domain.StepStatusCompleted
}

func (e *Executor) skipPending(plan *domain.ExecutionPlan) {
	for _, s := range plan.Steps {
		if s.Status == domain.StepStatusPending {
			s.Status = domain.StepStatusSkipped
		}
	}
}

func (e *Executor) finish(plan *domain.ExecutionPlan, status domain.PlanStatus, summary string) {
	now := time.Now()
	plan.Status = status
	plan.Summary = summary
	plan.CompletedAt = &now
	e.logger.Info("plan settled",
		zap.String("plan_id", plan.PlanID),
		zap.String("status", string(status)),
		zap.String("summary", summary),
	)
}
