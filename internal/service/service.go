// Package service coordinates one query end to end: pipeline run, response
// mapping and history persistence.
package service

import (
	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/adapter/ai"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/auditor"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/gatekeeper"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/planner"
	store "github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/repository"
)

type Service struct {
	gatekeeper    *gatekeeper.Gatekeeper
	planner       *planner.Planner
	executor      *planner.Executor
	auditor       *auditor.Auditor
	aiClient      ai.Client
	store         store.AnalysisStore
	maxIterations int
	logger        *zap.Logger
}

func New(
	gk *gatekeeper.Gatekeeper,
	pl *planner.Planner,
	ex *planner.Executor,
	au *auditor.Auditor,
	aiClient ai.Client,
	analysisStore store.AnalysisStore,
	maxIterations int,
	logger *zap.Logger,
) *Service {
	return &Service{
		gatekeeper:    gk,
		planner:       pl,
		executor:      ex,
		auditor:       au,
		aiClient:      aiClient,
		store:         analysisStore,
		maxIterations: maxIterations,
		logger:        logger,
	}
}
