package tools

import (
	"context"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/adapter/ai"
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// AIAnalysisHandler builds the handler for the generic analysis capability.
// It is the planner's fallback step for requests no registered capability
// covers, and the aggregation step of multi-domain plans.
func AIAnalysisHandler(client ai.Client) Handler {
	return func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		prompt, _ := params["objective"].(string)
		if prompt == "" {
			prompt = "Analyze the collected HR data"
		}

		gen, err := client.Generate(ctx, &ai.Request{
			Prompt:   prompt,
			Context:  params,
			TenantID: qctx.TenantID,
		})
		if err != nil {
			return nil, err
		}

		return &domain.StepResult{
			Category: domain.CategoryGeneric,
			Generic: map[string]any{
				"analysis":        gen.Analysis,
				"insights":        gen.Insights,
				"recommendations": gen.Recommendations,
				"confidence":      gen.Confidence,
			},
		}, nil
	}
}
