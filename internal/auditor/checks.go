package auditor

import (
	"math"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// Scoring constants. Thresholds and penalties are data so they can be
// tuned and tested independently of the audit flow.
const (
	defaultDimensionScore = 75
	firstResultScore      = 85
	consistencyBaseline   = 95
	consistencyPenalty    = 50

	outOfRangePenalty    = 70
	contradictionPenalty = 30
	negativeValuePenalty = 30
	imbalancePenalty     = 20

	specificCheckConfidence = 90
	defaultCheckConfidence  = 60

	headcountTolerance   = 0.10
	payrollTolerance     = 0.15
	documentTolerance    = 0.20
	performanceTolerance = 0.15
	payrollMathTolerance = 0.05
)

// checkCompleteness returns the fraction of the category's required result
// fields that are present, scaled to 0-100.
func checkCompleteness(result *domain.StepResult) int {
	switch result.Category {
	case domain.CategoryEmployee:
		if result.Employee == nil {
			return 0
		}
		return fractionScore(
			result.Employee.TotalEmployees > 0,
			result.Employee.ActiveEmployees > 0,
			result.Employee.SaudizationRate > 0,
		)
	case domain.CategoryPayroll:
		if result.Payroll == nil {
			return 0
		}
		return fractionScore(
			result.Payroll.TotalPayroll > 0,
			result.Payroll.EmployeeCount > 0,
		)
	case domain.CategoryDocument:
		if result.Document == nil {
			return 0
		}
		return fractionScore(result.Document.TotalCount > 0)
	case domain.CategoryPerformance:
		if result.Performance == nil {
			return 0
		}
		return fractionScore(result.Performance.ReviewsTotal > 0)
	}
	return defaultDimensionScore
}

// checkAccuracy starts at 100 and deducts fixed penalties for out-of-range
// or internally contradictory values.
func checkAccuracy(result *domain.StepResult) int {
	score := 100
	switch result.Category {
	case domain.CategoryEmployee:
		m := result.Employee
		if m == nil {
			return 0
		}
		if m.SaudizationRate < 0 || m.SaudizationRate > 100 {
			score -= outOfRangePenalty
		}
		if m.SaudiCount > m.ActiveEmployees {
			score -= contradictionPenalty
		}
		if m.TotalEmployees < 0 || m.ActiveEmployees < 0 || m.SaudiCount < 0 {
			score -= negativeValuePenalty
		}
		if m.ActiveEmployees > m.TotalEmployees {
			score -= imbalancePenalty
		}
	case domain.CategoryPayroll:
		m := result.Payroll
		if m == nil {
			return 0
		}
		if m.TotalPayroll < 0 || m.AverageSalary < 0 {
			score -= outOfRangePenalty
		}
		if m.EmployeeCount < 0 {
			score -= negativeValuePenalty
		}
		if m.EmployeeCount > 0 && m.AverageSalary > 0 {
			implied := m.AverageSalary * float64(m.EmployeeCount)
			if relativeDiff(implied, m.TotalPayroll) > payrollMathTolerance {
				score -= imbalancePenalty
			}
		}
	case domain.CategoryDocument:
		m := result.Document
		if m == nil {
			return 0
		}
		if m.ExpiringCount > m.TotalCount || m.ExpiredCount > m.TotalCount {
			score -= contradictionPenalty
		}
		if m.TotalCount < 0 || m.ExpiringCount < 0 || m.ExpiredCount < 0 {
			score -= negativeValuePenalty
		}
	case domain.CategoryPerformance:
		m := result.Performance
		if m == nil {
			return 0
		}
		if m.AverageRating < 0 || m.AverageRating > 5 {
			score -= outOfRangePenalty
		}
		if m.ReviewsCompleted > m.ReviewsTotal {
			score -= contradictionPenalty
		}
	default:
		return defaultDimensionScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

// checkConsistency compares against the most recent prior result of the
// same category within the plan. The first result of a category scores
// high but not perfect; a relative change beyond the category's tolerance
// is deducted sharply.
func checkConsistency(prev, cur *domain.StepResult) int {
	if prev == nil {
		return firstResultScore
	}
	score := consistencyBaseline
	switch cur.Category {
	case domain.CategoryEmployee:
		if prev.Employee == nil || cur.Employee == nil {
			return firstResultScore
		}
		if relativeDiff(float64(cur.Employee.ActiveEmployees), float64(prev.Employee.ActiveEmployees)) > headcountTolerance {
			score -= consistencyPenalty
		}
	case domain.CategoryPayroll:
		if prev.Payroll == nil || cur.Payroll == nil {
			return firstResultScore
		}
		if relativeDiff(cur.Payroll.TotalPayroll, prev.Payroll.TotalPayroll) > payrollTolerance {
			score -= consistencyPenalty
		}
	case domain.CategoryDocument:
		if prev.Document == nil || cur.Document == nil {
			return firstResultScore
		}
		if relativeDiff(float64(cur.Document.ExpiringCount), float64(prev.Document.ExpiringCount)) > documentTolerance {
			score -= consistencyPenalty
		}
	case domain.CategoryPerformance:
		if prev.Performance == nil || cur.Performance == nil {
			return firstResultScore
		}
		if relativeDiff(cur.Performance.AverageRating, prev.Performance.AverageRating) > performanceTolerance {
			score -= consistencyPenalty
		}
	default:
		return defaultDimensionScore
	}
	return score
}

func fractionScore(present ...bool) int {
	if len(present) == 0 {
		return defaultDimensionScore
	}
	hits := 0
	for _, p := range present {
		if p {
			hits++
		}
	}
	return hits * 100 / len(present)
}

// relativeDiff returns |a-b| relative to the larger magnitude. Two zeros
// are identical.
func relativeDiff(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	denom := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) / denom
}
