package auditor

import (
	"fmt"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

const (
	crossDomainExpected = 90
	crossDomainNeutral  = 85
)

// validateCrossDomain produces one validation per unordered pair of
// domains that both contributed completed results to the plan. Pairs
// without a bespoke rule get a neutral high score and no contradictions.
func (a *Auditor) validateCrossDomain(plan *domain.ExecutionPlan) []domain.CrossDomainValidation {
	byDomain := make(map[domain.Domain][]*domain.StepResult)
	var order []domain.Domain
	for _, step := range plan.Steps {
		if step.Status != domain.StepStatusCompleted || step.Result == nil {
			continue
		}
		if _, seen := byDomain[step.Domain]; !seen {
			order = append(order, step.Domain)
		}
		byDomain[step.Domain] = append(byDomain[step.Domain], step.Result)
	}
	if len(order) < 2 {
		return nil
	}

	var out []domain.CrossDomainValidation
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			out = append(out, comparePair(order[i], order[j], byDomain))
		}
	}
	return out
}

// comparePair applies the bespoke rule for a domain pair if one exists.
// Only employees vs payroll carries one today; everything else defaults.
func comparePair(a, b domain.Domain, byDomain map[domain.Domain][]*domain.StepResult) domain.CrossDomainValidation {
	cdv := domain.CrossDomainValidation{
		Domains:  [2]domain.Domain{a, b},
		Expected: crossDomainExpected,
		Actual:   crossDomainNeutral,
	}

	if isPair(a, b, domain.DomainEmployees, domain.DomainPayroll) {
		emp := latestEmployee(byDomain)
		pay := latestPayroll(byDomain)
		if emp != nil && pay != nil {
			cdv.Metrics = []string{"active_employees", "employee_count"}
			diff := relativeDiff(float64(emp.ActiveEmployees), float64(pay.EmployeeCount))
			actual := 100 - int(diff*200)
			if actual < 0 {
				actual = 0
			}
			cdv.Actual = actual
			if actual < crossDomainThreshold {
				cdv.Contradictions = append(cdv.Contradictions, fmt.Sprintf(
					"payroll covers %d employees but headcount reports %d active",
					pay.EmployeeCount, emp.ActiveEmployees))
				cdv.Resolution = "re-run headcount and payroll capabilities against the same snapshot"
			}
		}
	}
	return cdv
}

func isPair(a, b, x, y domain.Domain) bool {
	return (a == x && b == y) || (a == y && b == x)
}

func latestEmployee(byDomain map[domain.Domain][]*domain.StepResult) *domain.EmployeeMetrics {
	results := byDomain[domain.DomainEmployees]
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].Employee != nil {
			return results[i].Employee
		}
	}
	return nil
}

func latestPayroll(byDomain map[domain.Domain][]*domain.StepResult) *domain.PayrollMetrics {
	results := byDomain[domain.DomainPayroll]
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].Payroll != nil {
			return results[i].Payroll
		}
	}
	return nil
}
