// Package planner synthesizes and executes ordered step plans for
// validated requests. Plan synthesis matches the request against a fixed
// pattern library and falls back to the capability table of the target
// domain; execution walks the dependency graph with a bounded worker pool.
package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

const (
	confidenceBaseline   = 70
	patternMatchBonus    = 20
	tenantContextBonus   = 5
	userContextBonus     = 5
	toolsAvailableBonus  = 10
	fallbackTool         = "ai_analysis"
	fallbackStepEstimate = 5 * time.Second
)

// Planner builds execution plans. It is stateless; scoring tables live in
// patterns.go.
type Planner struct {
	logger *zap.Logger
}

// New creates a planner.
func New(logger *zap.Logger) *Planner {
	return &Planner{logger: logger}
}

// CreatePlan synthesizes a plan for a validated request. The plan comes
// back in ready state with steps in executable order: no step is placed
// before any step it depends on.
func (p *Planner) CreatePlan(query string, dom domain.Domain, qctx domain.QueryContext) *domain.ExecutionPlan {
	tokens := tokenize(query)

	plan := &domain.ExecutionPlan{
		PlanID:    "plan_" + uuid.New().String()[:8],
		Query:     query,
		Domain:    dom,
		Status:    domain.PlanStatusDraft,
		CreatedAt: time.Now(),
	}

	pattern := matchPattern(tokens)
	if pattern != nil {
		plan.Objective = pattern.Objective
		if plan.Domain == "" {
			plan.Domain = pattern.Domain
		}
		plan.Steps = stepsFromTemplates(pattern.Steps)
	} else {
		plan.Objective = "Answer: " + query
		plan.Steps = stepsFromCapabilities(dom)
	}

	orderSteps(plan.Steps)
	for _, s := range plan.Steps {
		plan.Estimated += s.Estimate
	}
	plan.Complexity = classifyComplexity(tokens)
	plan.Confidence = planConfidence(pattern != nil, qctx)
	plan.Status = domain.PlanStatusReady

	p.logger.Debug("plan created",
		zap.String("plan_id", plan.PlanID),
		zap.String("domain", string(plan.Domain)),
		zap.Int("steps", len(plan.Steps)),
		zap.String("complexity", string(plan.Complexity)),
		zap.Bool("pattern_matched", pattern != nil),
	)
	return plan
}

// Replan builds a fresh plan from a settled one by applying the auditor's
// strategy. The previous plan is left untouched; the new plan starts ready
// with every step pending.
func (p *Planner) Replan(prev *domain.ExecutionPlan, strategy *domain.ReplanStrategy) *domain.ExecutionPlan {
	modified := make(map[string]*domain.Step, len(strategy.Modified))
	for _, s := range strategy.Modified {
		modified[s.StepID] = s
	}
	removed := make(map[string]bool, len(strategy.Removed))
	for _, id := range strategy.Removed {
		removed[id] = true
	}

	next := &domain.ExecutionPlan{
		PlanID:     "plan_" + uuid.New().String()[:8],
		Query:      prev.Query,
		Objective:  prev.Objective,
		Domain:     prev.Domain,
		Complexity: prev.Complexity,
		Confidence: prev.Confidence,
		Status:     domain.PlanStatusDraft,
		Iteration:  prev.Iteration + 1,
		CreatedAt:  time.Now(),
	}
	for _, s := range prev.Steps {
		if removed[s.StepID] {
			continue
		}
		if m, ok := modified[s.StepID]; ok {
			next.Steps = append(next.Steps, m.Clone())
			continue
		}
		next.Steps = append(next.Steps, s.Clone())
	}
	for _, s := range strategy.Added {
		next.Steps = append(next.Steps, s.Clone())
	}

	orderSteps(next.Steps)
	for _, s := range next.Steps {
		next.Estimated += s.Estimate
	}
	next.Status = domain.PlanStatusReady

	p.logger.Info("plan rebuilt after audit",
		zap.String("plan_id", next.PlanID),
		zap.String("previous_plan_id", prev.PlanID),
		zap.String("strategy", strategy.Label),
		zap.Int("iteration", next.Iteration),
	)
	return next
}

// matchPattern returns the first pattern with at least minKeywordHits hits.
func matchPattern(tokens []string) *queryPattern {
	for i := range queryPatterns {
		hits := 0
		for _, kw := range queryPatterns[i].Keywords {
			if hasToken(tokens, kw) {
				hits++
			}
		}
		if hits >= minKeywordHits {
			return &queryPatterns[i]
		}
	}
	return nil
}

func stepsFromTemplates(templates []stepTemplate) []*domain.Step {
	steps := make([]*domain.Step, len(templates))
	for i, tpl := range templates {
		steps[i] = &domain.Step{
			StepID:   "step_" + uuid.New().String()[:8],
			Name:     tpl.Name,
			Tool:     tpl.Tool,
			Domain:   tpl.Domain,
			Params:   map[string]any{},
			Estimate: tpl.Estimate,
			Priority: tpl.Priority,
			Status:   domain.StepStatusPending,
		}
	}
	for i, tpl := range templates {
		for _, dep := range tpl.DependsOn {
			steps[i].DependsOn = append(steps[i].DependsOn, steps[dep].StepID)
		}
	}
	return steps
}

// stepsFromCapabilities builds a strict linear chain over the target
// domain's capability table, or a single generic AI step when the domain
// has none registered.
func stepsFromCapabilities(dom domain.Domain) []*domain.Step {
	caps := capabilitiesFor(dom)
	if len(caps) == 0 {
		return []*domain.Step{{
			StepID:   "step_" + uuid.New().String()[:8],
			Name:     "Generate AI analysis",
			Tool:     fallbackTool,
			Domain:   dom,
			Params:   map[string]any{},
			Estimate: fallbackStepEstimate,
			Priority: domain.PriorityHigh,
			Status:   domain.StepStatusPending,
		}}
	}

	steps := make([]*domain.Step, len(caps))
	for i, c := range caps {
		steps[i] = &domain.Step{
			StepID:   "step_" + uuid.New().String()[:8],
			Name:     c.Name,
			Tool:     c.Tool,
			Domain:   dom,
			Params:   map[string]any{},
			Estimate: c.Estimate,
			Priority: c.Priority,
			Status:   domain.StepStatusPending,
		}
		if i > 0 {
			steps[i].DependsOn = []string{steps[i-1].StepID}
		}
	}
	return steps
}

// orderSteps stable-sorts by ascending dependency count, then priority
// rank. Prerequisite-free high-priority steps run first; a step never
// precedes its dependencies.
func orderSteps(steps []*domain.Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		if len(steps[i].DependsOn) != len(steps[j].DependsOn) {
			return len(steps[i].DependsOn) < len(steps[j].DependsOn)
		}
		return domain.PriorityRank(steps[i].Priority) < domain.PriorityRank(steps[j].Priority)
	})
}

func classifyComplexity(tokens []string) domain.Complexity {
	for _, group := range complexityGroups {
		for _, kw := range group.Keywords {
			if hasToken(tokens, kw) {
				return group.Complexity
			}
		}
	}
	return domain.ComplexitySimple
}

func planConfidence(patternMatched bool, qctx domain.QueryContext) int {
	confidence := confidenceBaseline
	if patternMatched {
		confidence += patternMatchBonus
	}
	if qctx.TenantID != "" {
		confidence += tenantContextBonus
	}
	if qctx.UserID != "" {
		confidence += userContextBonus
	}
	if len(qctx.Tools) > 0 {
		confidence += toolsAvailableBonus
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func hasToken(tokens []string, word string) bool {
	for _, t := range tokens {
		if t == word {
			return true
		}
	}
	return false
}

// Summary text helpers shared with the executor.

func executionSummary(plan *domain.ExecutionPlan) string {
	completed := len(plan.CompletedSteps())
	failed := len(plan.FailedSteps())
	return fmt.Sprintf("%d/%d steps completed, %d failed, estimated %s",
		completed, len(plan.Steps), failed, plan.Estimated)
}
