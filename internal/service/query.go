package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/pipeline"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/planner"
)

// RunQuery runs one query through a fresh pipeline controller and maps the
// outcome to a transport response. A clarification outcome is a normal
// response; only execution cancellation and generation failures error.
func (s *Service) RunQuery(ctx context.Context, req domain.QueryRequest) (*domain.QueryResponse, error) {
	qctx := domain.QueryContext{
		TenantID:  req.TenantID,
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Tools:     availableTools(),
	}

	start := time.Now()
	ctrl := pipeline.NewController(s.gatekeeper, s.planner, s.executor, s.auditor, s.aiClient, s.maxIterations, s.logger)
	result, err := ctrl.Process(ctx, req.Query, qctx)
	if err != nil {
		return nil, fmt.Errorf("query processing failed: %w", err)
	}
	elapsed := time.Since(start).Milliseconds()

	if result.Clarification != nil {
		return &domain.QueryResponse{
			Status:        domain.QueryStatusNeedsClarification,
			Validation:    &result.Validation,
			Clarification: result.Clarification,
		}, nil
	}

	resp := &domain.QueryResponse{
		Status:          domain.QueryStatusCompleted,
		Domain:          result.Plan.Domain,
		Analysis:        result.Analysis.Analysis,
		Insights:        result.Analysis.Insights,
		Recommendations: result.Analysis.Recommendations,
		Confidence:      result.Analysis.Confidence,
		Validation:      &result.Validation,
		Meta: &domain.QueryMeta{
			PlanID:         result.Plan.PlanID,
			Iterations:     result.Iterations,
			OverallQuality: result.OverallQuality(),
			AuditedSteps:   result.AuditedSteps(),
			ExecutionMs:    elapsed,
		},
	}

	s.appendHistory(ctx, req, result, elapsed)
	return resp, nil
}

// appendHistory records the completed analysis. Persistence failures are
// logged, not surfaced: the caller already has its answer.
func (s *Service) appendHistory(ctx context.Context, req domain.QueryRequest, result *pipeline.Result, elapsed int64) {
	if s.store == nil {
		return
	}
	record := &domain.AnalysisRecord{
		AnalysisID:      "an_" + uuid.New().String()[:8],
		TenantID:        req.TenantID,
		Domain:          result.Plan.Domain,
		Specialist:      specialistFor(result.Plan.Domain),
		Query:           req.Query,
		OverallQuality:  result.OverallQuality(),
		Iterations:      result.Iterations,
		AuditedSteps:    result.AuditedSteps(),
		Recommendations: result.Analysis.Recommendations,
		ExecutionMs:     elapsed,
		CreatedAt:       time.Now(),
	}
	if err := s.store.Append(ctx, record); err != nil {
		s.logger.Warn("failed to persist analysis record",
			zap.String("analysis_id", record.AnalysisID),
			zap.Error(err),
		)
	}
}

// ListAnalyses returns a tenant's analysis history, optionally filtered to
// one domain.
func (s *Service) ListAnalyses(ctx context.Context, tenantID string, dom domain.Domain, limit int) ([]domain.AnalysisRecord, error) {
	if dom != "" {
		records, err := s.store.ListByDomain(ctx, tenantID, dom, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list analyses: %w", err)
		}
		return records, nil
	}
	records, err := s.store.ListByTenant(ctx, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, nil
}

// Domains returns the routable capability domains.
func (s *Service) Domains() []domain.DomainInfo {
	return planner.Catalog()
}

// availableTools flattens the capability catalog into the tool list the
// gatekeeper scores context richness with.
func availableTools() []string {
	var names []string
	for _, info := range planner.Catalog() {
		names = append(names, info.Capabilities...)
	}
	return names
}

func specialistFor(dom domain.Domain) string {
	return string(dom) + "_specialist"
}
