package auditor

import (
	"fmt"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// Strategy labels.
const (
	StrategyTargetedCorrection = "targeted_correction"
	StrategyFullReplan         = "full_replan"
)

// GenerateReplanningStrategy derives the corrective step set for the next
// planning pass: every flagged step comes back with strict-validation
// parameters and its priority escalated to critical.
func (a *Auditor) GenerateReplanningStrategy(plan *domain.ExecutionPlan, audit *domain.PlanAudit) *domain.ReplanStrategy {
	flagged := make(map[string]domain.AuditResult, len(audit.Results))
	for _, r := range audit.Results {
		if r.NeedsReplanning {
			flagged[r.StepID] = r
		}
	}

	strategy := &domain.ReplanStrategy{Label: StrategyTargetedCorrection}
	if len(audit.Results) > 0 && len(flagged) > len(audit.Results)/2 {
		strategy.Label = StrategyFullReplan
	}

	for _, step := range plan.Steps {
		result, ok := flagged[step.StepID]
		if !ok {
			continue
		}
		modified := step.Clone()
		modified.Params["strict_validation"] = true
		modified.Params["source_verification"] = true
		modified.Priority = domain.PriorityCritical
		strategy.Modified = append(strategy.Modified, modified)
		strategy.Reasoning = append(strategy.Reasoning, fmt.Sprintf(
			"step %q scored %d overall (%d issues); re-running with strict validation and critical priority",
			step.Name, result.Overall, len(result.Issues)))
	}

	// Failed steps never reached audit; re-attempt them with the same
	// escalation so a transient capability failure gets a second chance.
	for _, step := range plan.FailedSteps() {
		modified := step.Clone()
		modified.Params["strict_validation"] = true
		modified.Priority = domain.PriorityCritical
		strategy.Modified = append(strategy.Modified, modified)
		strategy.Reasoning = append(strategy.Reasoning, fmt.Sprintf(
			"step %q failed (%s); retrying with critical priority", step.Name, step.Error))
	}

	return strategy
}
