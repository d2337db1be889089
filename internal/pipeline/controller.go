// Package pipeline sequences one request through validation, planning,
// execution, auditing and the bounded corrective replanning loop.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/adapter/ai"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/auditor"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/gatekeeper"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/planner"
)

// MaxReplanIterations caps the corrective feedback loop: after this many
// replanning passes the best available result is accepted.
const MaxReplanIterations = 3

// Result is the terminal outcome of one request. A clarification outcome
// has Clarification set and no Analysis; a completed outcome the reverse.
type Result struct {
	Validation    domain.ValidationResult
	Clarification *domain.Clarification
	Plan          *domain.ExecutionPlan
	Audit         *domain.PlanAudit
	Analysis      *ai.Generation
	Iterations    int
}

// AuditedSteps returns how many step audits were produced in the final
// iteration.
func (r *Result) AuditedSteps() int {
	if r.Audit == nil {
		return 0
	}
	return len(r.Audit.Results)
}

// OverallQuality returns the final iteration's plan-level quality score.
func (r *Result) OverallQuality() int {
	if r.Audit == nil {
		return 0
	}
	return r.Audit.OverallQuality
}

// Controller drives the stage machine for a single request. It owns all
// per-request state; construct one per request, or Reset between requests.
// The controller itself performs no I/O: only step execution and the final
// generation call touch the outside world.
type Controller struct {
	gatekeeper    *gatekeeper.Gatekeeper
	planner       *planner.Planner
	executor      *planner.Executor
	auditor       *auditor.Auditor
	ai            ai.Client
	logger        *zap.Logger
	maxIterations int

	stage      domain.Stage
	plans      []*domain.ExecutionPlan
	audits     []*domain.PlanAudit
	iterations int
}

// NewController wires explicitly constructed services together. All of
// them are stateless and shared; only the controller carries request state.
func NewController(
	gk *gatekeeper.Gatekeeper,
	pl *planner.Planner,
	ex *planner.Executor,
	au *auditor.Auditor,
	aiClient ai.Client,
	maxIterations int,
	logger *zap.Logger,
) *Controller {
	if maxIterations <= 0 {
		maxIterations = MaxReplanIterations
	}
	return &Controller{
		gatekeeper:    gk,
		planner:       pl,
		executor:      ex,
		auditor:       au,
		ai:            aiClient,
		logger:        logger,
		maxIterations: maxIterations,
		stage:         domain.StageValidation,
	}
}

// Stage returns the controller's current stage.
func (c *Controller) Stage() domain.Stage {
	return c.stage
}

// Iterations returns how many replanning passes have run for the current
// request.
func (c *Controller) Iterations() int {
	return c.iterations
}

// Plans returns every plan iteration produced for the current request,
// oldest first. Settled plans are retained for audit history and never
// re-entered.
func (c *Controller) Plans() []*domain.ExecutionPlan {
	return c.plans
}

// Audits returns the audit of each plan iteration, oldest first.
func (c *Controller) Audits() []*domain.PlanAudit {
	return c.audits
}

// Reset discards all plan and audit state for the in-flight request. The
// next request starts from a clean validation stage with the iteration
// counter at zero.
func (c *Controller) Reset() {
	c.stage = domain.StageValidation
	c.plans = nil
	c.audits = nil
	c.iterations = 0
}

// Process runs one request through the full pipeline. A rejected request
// returns a clarification result and leaves the controller in validation;
// an accepted one runs the plan/audit loop, bounded by the iteration
// ceiling, then forwards the validated request to the generation service.
func (c *Controller) Process(ctx context.Context, query string, qctx domain.QueryContext) (*Result, error) {
	c.stage = domain.StageValidation
	validation := c.gatekeeper.Validate(query, qctx)
	if !validation.Valid {
		clarification := c.gatekeeper.GenerateClarification(query, validation)
		c.logger.Info("query rejected, clarification required",
			zap.Int("clarity", validation.Clarity),
			zap.Int("specificity", validation.Specificity),
			zap.Int("confidence", validation.Confidence),
		)
		return &Result{Validation: validation, Clarification: &clarification}, nil
	}

	c.stage = domain.StagePlanning
	plan := c.planner.CreatePlan(validation.Query, validation.Domain, qctx)
	c.plans = append(c.plans, plan)

	var audit *domain.PlanAudit
	for {
		c.stage = domain.StageExecution
		if err := c.executor.Execute(ctx, plan, qctx); err != nil {
			return nil, fmt.Errorf("plan execution canceled: %w", err)
		}

		// Failed plans still go through audit so partial results are
		// evaluated and can drive a corrective pass.
		c.stage = domain.StageAuditing
		audit = c.auditor.Audit(plan)
		c.audits = append(c.audits, audit)

		if !audit.NeedsReplanning || c.iterations >= c.maxIterations {
			break
		}

		c.stage = domain.StageReplanning
		strategy := c.auditor.GenerateReplanningStrategy(plan, audit)
		c.iterations++

		c.stage = domain.StagePlanning
		plan = c.planner.Replan(plan, strategy)
		c.plans = append(c.plans, plan)
	}

	c.stage = domain.StageCompleted
	generation, err := c.ai.Generate(ctx, &ai.Request{
		Prompt:   validation.Query,
		TenantID: qctx.TenantID,
		Context:  generationContext(plan, audit, c.iterations),
	})
	if err != nil {
		return nil, fmt.Errorf("generation service failed: %w", err)
	}

	c.logger.Info("request completed",
		zap.String("plan_id", plan.PlanID),
		zap.Int("iterations", c.iterations),
		zap.Int("overall_quality", audit.OverallQuality),
	)
	return &Result{
		Validation: validation,
		Plan:       plan,
		Audit:      audit,
		Analysis:   generation,
		Iterations: c.iterations,
	}, nil
}

// generationContext packages the final plan's results and audit metadata
// for the generation service.
func generationContext(plan *domain.ExecutionPlan, audit *domain.PlanAudit, iterations int) map[string]any {
	results := make(map[string]any)
	for _, step := range plan.CompletedSteps() {
		results[step.Tool] = step.Result
	}
	return map[string]any{
		"domain":          plan.Domain,
		"objective":       plan.Objective,
		"results":         results,
		"overall_quality": audit.OverallQuality,
		"iterations":      iterations,
	}
}
