package tools

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/planner"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/policy"
)

// policyInvoker evaluates the capability policy before every invocation.
type policyInvoker struct {
	engine *policy.Engine
	next   planner.Invoker
	logger *zap.Logger
}

var _ planner.Invoker = (*policyInvoker)(nil)

// WithPolicy wraps an invoker with an OPA policy check. A blocked
// invocation fails the step without reaching the underlying handler.
func WithPolicy(engine *policy.Engine, next planner.Invoker, logger *zap.Logger) planner.Invoker {
	return &policyInvoker{engine: engine, next: next, logger: logger}
}

func (p *policyInvoker) Invoke(ctx context.Context, tool string, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
	input := map[string]any{
		"tool_name": tool,
		"tenant_id": qctx.TenantID,
		"user_id":   qctx.UserID,
		"params":    params,
	}
	if params == nil {
		input["params"] = map[string]any{}
	}

	decision, reason, err := p.engine.Evaluate(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("policy evaluation failed: %w", err)
	}
	if decision == policy.DecisionBlock {
		p.logger.Warn("capability blocked by policy",
			zap.String("tool", tool),
			zap.String("reason", reason),
		)
		return nil, fmt.Errorf("capability %s blocked by policy: %s", tool, reason)
	}

	return p.next.Invoke(ctx, tool, params, qctx)
}
