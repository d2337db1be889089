package auditor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

func newTestAuditor() *Auditor {
	return New(zap.NewNop())
}

func completedStep(id string, dom domain.Domain, tool string, result *domain.StepResult) *domain.Step {
	return &domain.Step{
		StepID:   id,
		Name:     id,
		Tool:     tool,
		Domain:   dom,
		Params:   map[string]any{},
		Priority: domain.PriorityHigh,
		Status:   domain.StepStatusCompleted,
		Result:   result,
	}
}

func healthyHeadcount() *domain.StepResult {
	return &domain.StepResult{
		Category: domain.CategoryEmployee,
		Employee: &domain.EmployeeMetrics{
			TotalEmployees:  248,
			ActiveEmployees: 235,
			SaudiCount:      142,
			SaudizationRate: 60.4,
		},
	}
}

func TestAuditHealthyHeadcountPasses(t *testing.T) {
	a := newTestAuditor()

	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusCompleted,
		Steps:  []*domain.Step{completedStep("s1", domain.DomainEmployees, "get_headcount_summary", healthyHeadcount())},
	}
	audit := a.Audit(plan)

	require.Len(t, audit.Results, 1)
	result := audit.Results[0]
	assert.Equal(t, 100, result.Quality)
	assert.Equal(t, 100, result.Accuracy)
	assert.Equal(t, firstResultScore, result.Consistency)
	assert.GreaterOrEqual(t, result.Overall, OverallThreshold)
	assert.False(t, result.NeedsReplanning)
	assert.Empty(t, result.Issues)
	assert.False(t, audit.NeedsReplanning)
}

func TestAuditOutOfRangeRateIsCritical(t *testing.T) {
	a := newTestAuditor()

	bad := healthyHeadcount()
	bad.Employee.SaudizationRate = 130

	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusCompleted,
		Steps:  []*domain.Step{completedStep("s1", domain.DomainEmployees, "get_headcount_summary", bad)},
	}
	audit := a.Audit(plan)

	require.Len(t, audit.Results, 1)
	result := audit.Results[0]
	assert.Equal(t, 30, result.Accuracy)
	require.NotEmpty(t, result.Issues)
	assert.True(t, domain.HasCritical(result.Issues))
	assert.True(t, result.NeedsReplanning)
	assert.True(t, audit.NeedsReplanning)
}

func TestNeedsReplanBoundary(t *testing.T) {
	high := []domain.Issue{{Category: domain.IssueAccuracy, Severity: domain.SeverityHigh}}
	critical := []domain.Issue{{Category: domain.IssueAccuracy, Severity: domain.SeverityCritical}}

	assert.True(t, needsReplan(74, nil))
	assert.False(t, needsReplan(75, nil))
	assert.False(t, needsReplan(76, nil))
	assert.False(t, needsReplan(90, high))
	assert.True(t, needsReplan(90, critical))
	assert.True(t, needsReplan(74, high))
}

func TestAuditEmptyPlanNeedsReplanning(t *testing.T) {
	a := newTestAuditor()

	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusFailed,
		Steps: []*domain.Step{
			{StepID: "s1", Tool: "get_headcount_summary", Status: domain.StepStatusFailed, Error: "boom"},
		},
	}
	audit := a.Audit(plan)

	assert.Empty(t, audit.Results)
	assert.Equal(t, 0, audit.OverallQuality)
	assert.True(t, audit.NeedsReplanning)
}

func TestAuditConsistencyAgainstPriorResult(t *testing.T) {
	a := newTestAuditor()

	second := healthyHeadcount()
	second.Employee.ActiveEmployees = 150 // > 10% swing from 235

	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusCompleted,
		Steps: []*domain.Step{
			completedStep("s1", domain.DomainEmployees, "get_headcount_summary", healthyHeadcount()),
			completedStep("s2", domain.DomainEmployees, "get_employee_demographics", second),
		},
	}
	audit := a.Audit(plan)

	require.Len(t, audit.Results, 2)
	assert.Equal(t, firstResultScore, audit.Results[0].Consistency)
	assert.Equal(t, consistencyBaseline-consistencyPenalty, audit.Results[1].Consistency)
	// A lone consistency dip is high severity, not critical, and the
	// overall score stays above threshold.
	assert.False(t, audit.Results[1].NeedsReplanning)

	hasConsistencyIssue := false
	for _, issue := range audit.Results[1].Issues {
		if issue.Category == domain.IssueConsistency {
			hasConsistencyIssue = true
		}
	}
	assert.True(t, hasConsistencyIssue)
}

func TestCrossDomainPairProduced(t *testing.T) {
	a := newTestAuditor()

	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusCompleted,
		Steps: []*domain.Step{
			completedStep("s1", domain.DomainEmployees, "get_headcount_summary", healthyHeadcount()),
			completedStep("s2", domain.DomainPayroll, "get_payroll_summary", &domain.StepResult{
				Category: domain.CategoryPayroll,
				Payroll:  &domain.PayrollMetrics{TotalPayroll: 2_350_000, AverageSalary: 10_000, EmployeeCount: 235},
			}),
		},
	}
	audit := a.Audit(plan)

	require.Len(t, audit.CrossDomain, 1)
	cdv := audit.CrossDomain[0]
	assert.Equal(t, [2]domain.Domain{domain.DomainEmployees, domain.DomainPayroll}, cdv.Domains)
	assert.Equal(t, 100, cdv.Actual)
	assert.Empty(t, cdv.Contradictions)
	assert.False(t, audit.NeedsReplanning)
}

func TestCrossDomainDivergentHeadcount(t *testing.T) {
	a := newTestAuditor()

	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusCompleted,
		Steps: []*domain.Step{
			completedStep("s1", domain.DomainEmployees, "get_headcount_summary", healthyHeadcount()),
			completedStep("s2", domain.DomainPayroll, "get_payroll_summary", &domain.StepResult{
				Category: domain.CategoryPayroll,
				Payroll:  &domain.PayrollMetrics{TotalPayroll: 1_000_000, AverageSalary: 10_000, EmployeeCount: 100},
			}),
		},
	}
	audit := a.Audit(plan)

	require.Len(t, audit.CrossDomain, 1)
	cdv := audit.CrossDomain[0]
	assert.Less(t, cdv.Actual, crossDomainThreshold)
	assert.NotEmpty(t, cdv.Contradictions)
	assert.True(t, audit.NeedsReplanning)
}

func TestCrossDomainDefaultsToNeutral(t *testing.T) {
	a := newTestAuditor()

	// No bespoke rule exists for employees vs documents.
	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusCompleted,
		Steps: []*domain.Step{
			completedStep("s1", domain.DomainEmployees, "get_headcount_summary", healthyHeadcount()),
			completedStep("s2", domain.DomainDocuments, "list_expiring_documents", &domain.StepResult{
				Category: domain.CategoryDocument,
				Document: &domain.DocumentMetrics{TotalCount: 400, ExpiringCount: 12},
			}),
		},
	}
	audit := a.Audit(plan)

	require.Len(t, audit.CrossDomain, 1)
	assert.Equal(t, crossDomainNeutral, audit.CrossDomain[0].Actual)
	assert.Empty(t, audit.CrossDomain[0].Contradictions)
}

func TestGenerateReplanningStrategy(t *testing.T) {
	a := newTestAuditor()

	bad := healthyHeadcount()
	bad.Employee.SaudizationRate = 130
	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusCompleted,
		Steps:  []*domain.Step{completedStep("s1", domain.DomainEmployees, "get_headcount_summary", bad)},
	}
	audit := a.Audit(plan)
	require.True(t, audit.NeedsReplanning)

	strategy := a.GenerateReplanningStrategy(plan, audit)
	assert.Equal(t, StrategyFullReplan, strategy.Label)
	require.Len(t, strategy.Modified, 1)
	modified := strategy.Modified[0]
	assert.Equal(t, "s1", modified.StepID)
	assert.Equal(t, domain.PriorityCritical, modified.Priority)
	assert.Equal(t, true, modified.Params["strict_validation"])
	assert.Equal(t, true, modified.Params["source_verification"])
	require.Len(t, strategy.Reasoning, 1)
	assert.Contains(t, strategy.Reasoning[0], "strict validation")

	// The audited plan's own step is untouched.
	assert.Equal(t, domain.PriorityHigh, plan.Steps[0].Priority)
	assert.NotContains(t, plan.Steps[0].Params, "strict_validation")
}

func TestGenerateReplanningStrategyRetriesFailedSteps(t *testing.T) {
	a := newTestAuditor()

	plan := &domain.ExecutionPlan{
		PlanID: "plan_test",
		Status: domain.PlanStatusFailed,
		Steps: []*domain.Step{
			{StepID: "s1", Name: "s1", Tool: "get_headcount_summary", Params: map[string]any{},
				Priority: domain.PriorityCritical, Status: domain.StepStatusFailed, Error: "backend unavailable"},
		},
	}
	audit := a.Audit(plan)
	strategy := a.GenerateReplanningStrategy(plan, audit)

	require.Len(t, strategy.Modified, 1)
	assert.Equal(t, "s1", strategy.Modified[0].StepID)
	assert.Contains(t, strategy.Reasoning[0], "backend unavailable")
}

func TestCheckAccuracyPayrollImbalance(t *testing.T) {
	result := &domain.StepResult{
		Category: domain.CategoryPayroll,
		Payroll:  &domain.PayrollMetrics{TotalPayroll: 1_000_000, AverageSalary: 9_000, EmployeeCount: 80},
	}
	// 9000 * 80 = 720k, well off the reported 1m total.
	assert.Equal(t, 100-imbalancePenalty, checkAccuracy(result))
}

func TestCheckCompletenessMissingFields(t *testing.T) {
	result := &domain.StepResult{
		Category: domain.CategoryEmployee,
		Employee: &domain.EmployeeMetrics{TotalEmployees: 100},
	}
	assert.Equal(t, 33, checkCompleteness(result))

	mismatched := &domain.StepResult{Category: domain.CategoryEmployee}
	assert.Equal(t, 0, checkCompleteness(mismatched))
}
