package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/adapter/ai"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/policy"
)

func TestBuiltinRegistryCoversPlannerCapabilities(t *testing.T) {
	r := NewBuiltinRegistry(zap.NewNop())

	for _, tool := range []string{
		"get_headcount_summary",
		"get_employee_demographics",
		"get_saudization_status",
		"get_payroll_summary",
		"get_cost_breakdown",
		"list_expiring_documents",
		"get_performance_overview",
		"get_recruitment_pipeline",
		"get_attendance_summary",
		"get_training_summary",
	} {
		result, err := r.Invoke(context.Background(), tool, nil, domain.QueryContext{TenantID: "t1"})
		require.NoError(t, err, tool)
		require.NotNil(t, result, tool)
		assert.Equal(t, domain.CategoryForTool(tool), result.Category, tool)
	}
}

func TestBuiltinHeadcountIsInternallyConsistent(t *testing.T) {
	r := NewBuiltinRegistry(zap.NewNop())

	result, err := r.Invoke(context.Background(), "get_headcount_summary", nil, domain.QueryContext{})
	require.NoError(t, err)
	require.NotNil(t, result.Employee)

	m := result.Employee
	assert.LessOrEqual(t, m.ActiveEmployees, m.TotalEmployees)
	assert.LessOrEqual(t, m.SaudiCount, m.ActiveEmployees)
	assert.InDelta(t, float64(m.SaudiCount)/float64(m.ActiveEmployees)*100, m.SaudizationRate, 0.1)
}

func TestBuiltinPayrollMathChecksOut(t *testing.T) {
	r := NewBuiltinRegistry(zap.NewNop())

	result, err := r.Invoke(context.Background(), "get_payroll_summary", nil, domain.QueryContext{TenantID: "t1"})
	require.NoError(t, err)
	require.NotNil(t, result.Payroll)

	m := result.Payroll
	assert.InDelta(t, m.TotalPayroll, m.AverageSalary*float64(m.EmployeeCount), m.TotalPayroll*0.05)
}

func TestInvokeUnknownCapability(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	_, err := r.Invoke(context.Background(), "no_such_tool", nil, domain.QueryContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown capability")
}

func TestToolsListsRegisteredNamesSorted(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	r.Register("zeta", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{Category: domain.CategoryGeneric}, nil
	})
	r.Register("alpha", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{Category: domain.CategoryGeneric}, nil
	})

	assert.Equal(t, []string{"alpha", "zeta"}, r.Tools())
}

func TestAIAnalysisHandlerUsesClient(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	r.Register("ai_analysis", AIAnalysisHandler(ai.NewMockClient()))

	result, err := r.Invoke(context.Background(), "ai_analysis", map[string]any{"objective": "workforce outlook"}, domain.QueryContext{TenantID: "t1"})
	require.NoError(t, err)
	require.Equal(t, domain.CategoryGeneric, result.Category)
	assert.Contains(t, result.Generic["analysis"], "workforce outlook")
}

func TestWithPolicyBlocksPayrollWithoutTenant(t *testing.T) {
	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)

	gated := WithPolicy(engine, NewBuiltinRegistry(zap.NewNop()), zap.NewNop())

	_, err = gated.Invoke(context.Background(), "get_payroll_summary", nil, domain.QueryContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked by policy")

	result, err := gated.Invoke(context.Background(), "get_payroll_summary", nil, domain.QueryContext{TenantID: "t1"})
	require.NoError(t, err)
	assert.NotNil(t, result.Payroll)
}
