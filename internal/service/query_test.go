package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/adapter/ai"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/adapter/tools"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/auditor"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/gatekeeper"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/pipeline"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/planner"
	store "github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := zap.NewNop()

	analysisStore, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { analysisStore.Close() })

	registry := tools.NewBuiltinRegistry(logger)
	registry.Register("ai_analysis", tools.AIAnalysisHandler(ai.NewMockClient()))

	return New(
		gatekeeper.New(logger),
		planner.New(logger),
		planner.NewExecutor(registry, 4, 2*time.Second, logger),
		auditor.New(logger),
		ai.NewMockClient(),
		analysisStore,
		pipeline.MaxReplanIterations,
		logger,
	)
}

func TestRunQueryCompleted(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.RunQuery(context.Background(), domain.QueryRequest{
		TenantID: "t1",
		UserID:   "u1",
		Query:    "How many active employees do we have?",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.QueryStatusCompleted, resp.Status)
	assert.Equal(t, domain.DomainEmployees, resp.Domain)
	assert.NotEmpty(t, resp.Analysis)
	require.NotNil(t, resp.Meta)
	assert.NotEmpty(t, resp.Meta.PlanID)
	assert.Equal(t, 0, resp.Meta.Iterations)
	assert.GreaterOrEqual(t, resp.Meta.OverallQuality, auditor.OverallThreshold)
	assert.Equal(t, 1, resp.Meta.AuditedSteps)
}

func TestRunQueryPersistsHistory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RunQuery(context.Background(), domain.QueryRequest{
		TenantID: "t1",
		Query:    "How many active employees do we have?",
	})
	require.NoError(t, err)

	records, err := svc.ListAnalyses(context.Background(), "t1", "", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.DomainEmployees, records[0].Domain)
	assert.Equal(t, "employees_specialist", records[0].Specialist)
	assert.Equal(t, "How many active employees do we have?", records[0].Query)
}

func TestRunQueryNeedsClarification(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.RunQuery(context.Background(), domain.QueryRequest{
		TenantID: "t1",
		Query:    "show",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.QueryStatusNeedsClarification, resp.Status)
	require.NotNil(t, resp.Clarification)
	assert.NotEmpty(t, resp.Clarification.Issues)
	assert.Nil(t, resp.Meta)

	// Rejected queries never reach the history.
	records, err := svc.ListAnalyses(context.Background(), "t1", "", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListAnalysesDomainFilter(t *testing.T) {
	svc := newTestService(t)

	for _, q := range []string{
		"How many active employees do we have?",
		"How much salary do we pay in total this month?",
	} {
		_, err := svc.RunQuery(context.Background(), domain.QueryRequest{TenantID: "t1", Query: q})
		require.NoError(t, err)
	}

	all, err := svc.ListAnalyses(context.Background(), "t1", "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	payrollOnly, err := svc.ListAnalyses(context.Background(), "t1", domain.DomainPayroll, 10)
	require.NoError(t, err)
	require.Len(t, payrollOnly, 1)
	assert.Equal(t, domain.DomainPayroll, payrollOnly[0].Domain)
}

func TestDomainsCatalog(t *testing.T) {
	svc := newTestService(t)

	infos := svc.Domains()
	require.Len(t, infos, 9)

	byDomain := make(map[domain.Domain][]string)
	for _, info := range infos {
		byDomain[info.Domain] = info.Capabilities
	}
	assert.Contains(t, byDomain[domain.DomainEmployees], "get_headcount_summary")
	assert.Contains(t, byDomain[domain.DomainPayroll], "get_payroll_summary")
	assert.Equal(t, []string{"ai_analysis"}, byDomain[domain.DomainAnalytics])
}
