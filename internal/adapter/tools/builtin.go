package tools

import (
	"context"

	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// NewBuiltinRegistry creates a registry with every HR capability the
// planner can schedule. Handlers return fixed figures until the live data
// backends are connected; the shapes and internal consistency match what
// the auditor expects from real sources.
func NewBuiltinRegistry(logger *zap.Logger) *Registry {
	r := NewRegistry(logger)

	r.Register("get_headcount_summary", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryEmployee,
			Employee: &domain.EmployeeMetrics{
				TotalEmployees:  248,
				ActiveEmployees: 235,
				SaudiCount:      142,
				SaudizationRate: 60.4,
				ByDepartment: map[string]int{
					"operations":      96,
					"engineering":     54,
					"sales":           38,
					"finance":         24,
					"human_resources": 23,
				},
			},
		}, nil
	})

	r.Register("get_employee_demographics", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryEmployee,
			Employee: &domain.EmployeeMetrics{
				TotalEmployees:  248,
				ActiveEmployees: 235,
				SaudiCount:      142,
				SaudizationRate: 60.4,
			},
		}, nil
	})

	r.Register("get_saudization_status", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryEmployee,
			Employee: &domain.EmployeeMetrics{
				TotalEmployees:  248,
				ActiveEmployees: 235,
				SaudiCount:      142,
				SaudizationRate: 60.4,
			},
		}, nil
	})

	r.Register("get_payroll_summary", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryPayroll,
			Payroll: &domain.PayrollMetrics{
				TotalPayroll:  2937500,
				AverageSalary: 12500,
				EmployeeCount: 235,
				Currency:      "SAR",
			},
		}, nil
	})

	r.Register("get_cost_breakdown", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryPayroll,
			Payroll: &domain.PayrollMetrics{
				TotalPayroll:  2937500,
				AverageSalary: 12500,
				EmployeeCount: 235,
				Currency:      "SAR",
			},
		}, nil
	})

	r.Register("list_expiring_documents", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryDocument,
			Document: &domain.DocumentMetrics{
				TotalCount:    412,
				ExpiringCount: 37,
				ExpiredCount:  5,
			},
		}, nil
	})

	r.Register("get_performance_overview", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryPerformance,
			Performance: &domain.PerformanceMetrics{
				AverageRating:    3.8,
				ReviewsCompleted: 180,
				ReviewsTotal:     220,
			},
		}, nil
	})

	r.Register("get_recruitment_pipeline", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryGeneric,
			Generic: map[string]any{
				"open_positions":         14,
				"candidates_in_pipeline": 86,
				"offers_extended":        6,
				"average_days_to_hire":   34,
			},
		}, nil
	})

	r.Register("get_attendance_summary", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryGeneric,
			Generic: map[string]any{
				"attendance_rate":    0.94,
				"late_arrivals":      41,
				"unexcused_absences": 7,
			},
		}, nil
	})

	r.Register("get_training_summary", func(ctx context.Context, params map[string]any, qctx domain.QueryContext) (*domain.StepResult, error) {
		return &domain.StepResult{
			Category: domain.CategoryGeneric,
			Generic: map[string]any{
				"active_programs":    9,
				"enrolled_employees": 118,
				"completion_rate":    0.72,
			},
		}, nil
	})

	return r
}
