// Package auditor inspects settled plans for quality, internal consistency
// and accuracy, and decides whether a corrective replanning pass is needed.
package auditor

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// Replanning and issue thresholds.
const (
	OverallThreshold = 75

	qualityIssueThreshold     = 60
	qualityCriticalThreshold  = 40
	consistencyIssueThreshold = 50
	accuracyIssueThreshold    = 60
	accuracyCriticalThreshold = 40

	crossDomainThreshold = 60
)

// Auditor audits settled plans. Stateless; safe for concurrent use.
type Auditor struct {
	logger *zap.Logger
}

// New creates an auditor.
func New(logger *zap.Logger) *Auditor {
	return &Auditor{logger: logger}
}

// Audit scores every completed step of a settled plan and aggregates a
// plan-level verdict. Audit results are appended per iteration and never
// mutated afterwards.
func (a *Auditor) Audit(plan *domain.ExecutionPlan) *domain.PlanAudit {
	audit := &domain.PlanAudit{}

	lastByCategory := make(map[domain.Category]*domain.StepResult)
	sum := 0

	for _, step := range plan.Steps {
		if step.Status != domain.StepStatusCompleted || step.Result == nil {
			continue
		}
		result := a.auditStep(step, lastByCategory[step.Result.Category])
		lastByCategory[step.Result.Category] = step.Result

		audit.Results = append(audit.Results, result)
		audit.Recommendations = append(audit.Recommendations, result.Recommendations...)
		sum += result.Overall
	}

	if len(audit.Results) > 0 {
		audit.OverallQuality = sum / len(audit.Results)
	}
	audit.CrossDomain = a.validateCrossDomain(plan)

	audit.NeedsReplanning = audit.OverallQuality < OverallThreshold
	for _, r := range audit.Results {
		if r.NeedsReplanning {
			audit.NeedsReplanning = true
		}
	}
	for _, cdv := range audit.CrossDomain {
		if cdv.Actual < crossDomainThreshold {
			audit.NeedsReplanning = true
		}
	}

	a.logger.Debug("plan audited",
		zap.String("plan_id", plan.PlanID),
		zap.Int("audited_steps", len(audit.Results)),
		zap.Int("overall_quality", audit.OverallQuality),
		zap.Bool("needs_replanning", audit.NeedsReplanning),
	)
	return audit
}

// auditStep scores one completed step against the previous result of the
// same category.
func (a *Auditor) auditStep(step *domain.Step, prev *domain.StepResult) domain.AuditResult {
	result := step.Result

	quality := checkCompleteness(result)
	accuracy := checkAccuracy(result)
	consistency := checkConsistency(prev, result)

	confidence := specificCheckConfidence
	if result.Category == domain.CategoryGeneric {
		confidence = defaultCheckConfidence
	}

	audit := domain.AuditResult{
		AuditID:     "audit_" + uuid.New().String()[:8],
		StepID:      step.StepID,
		Tool:        step.Tool,
		Category:    result.Category,
		Quality:     quality,
		Consistency: consistency,
		Accuracy:    accuracy,
		Overall:     (quality + consistency + accuracy) / 3,
		Confidence:  confidence,
	}
	audit.Issues = stepIssues(step, quality, consistency, accuracy)
	audit.Recommendations = recommendationsFor(audit.Issues)
	audit.NeedsReplanning = needsReplan(audit.Overall, audit.Issues)
	return audit
}

// needsReplan is true when the overall score is below threshold or any
// issue carries critical severity.
func needsReplan(overall int, issues []domain.Issue) bool {
	return overall < OverallThreshold || domain.HasCritical(issues)
}

// stepIssues derives issues from the three sub-scores.
func stepIssues(step *domain.Step, quality, consistency, accuracy int) []domain.Issue {
	var issues []domain.Issue

	if quality < qualityIssueThreshold {
		severity := domain.SeverityHigh
		if quality < qualityCriticalThreshold {
			severity = domain.SeverityCritical
		}
		issues = append(issues, domain.Issue{
			Category:     domain.IssueCompleteness,
			Severity:     severity,
			Description:  fmt.Sprintf("result of %q is missing required fields (quality %d)", step.Tool, quality),
			SuggestedFix: "re-run the capability with strict validation enabled",
		})
	}
	if consistency < consistencyIssueThreshold {
		issues = append(issues, domain.Issue{
			Category:     domain.IssueConsistency,
			Severity:     domain.SeverityHigh,
			Description:  fmt.Sprintf("result of %q deviates sharply from the previous result of its category (consistency %d)", step.Tool, consistency),
			SuggestedFix: "verify the data source before re-running",
		})
	}
	if accuracy < accuracyIssueThreshold {
		severity := domain.SeverityMedium
		if accuracy < accuracyCriticalThreshold {
			severity = domain.SeverityCritical
		}
		issues = append(issues, domain.Issue{
			Category:     domain.IssueAccuracy,
			Severity:     severity,
			Description:  fmt.Sprintf("result of %q contains out-of-range or contradictory values (accuracy %d)", step.Tool, accuracy),
			SuggestedFix: "re-run with source verification",
		})
	}
	return issues
}

func recommendationsFor(issues []domain.Issue) []string {
	var recs []string
	for _, issue := range issues {
		if issue.SuggestedFix != "" {
			recs = append(recs, issue.SuggestedFix)
		}
	}
	return recs
}
