package planner

import (
	"time"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// stepTemplate is the blueprint for one step inside a pattern. DependsOn
// holds indexes into the template list.
type stepTemplate struct {
	Name      string
	Tool      string
	Domain    domain.Domain
	Priority  domain.StepPriority
	Estimate  time.Duration
	DependsOn []int
}

// queryPattern pairs a keyword set with a template of default steps.
// A pattern matches when at least minKeywordHits of its keywords appear in
// the lowercased request; the first matching pattern wins.
type queryPattern struct {
	Name      string
	Domain    domain.Domain
	Objective string
	Keywords  []string
	Steps     []stepTemplate
}

const minKeywordHits = 2

// queryPatterns is the fixed pattern library, checked in order.
var queryPatterns = []queryPattern{
	{
		Name:      "employee_count",
		Domain:    domain.DomainEmployees,
		Objective: "Report the current headcount",
		Keywords:  []string{"how", "many", "employees", "employee", "headcount", "count", "number", "active"},
		Steps: []stepTemplate{
			{Name: "Get headcount summary", Tool: "get_headcount_summary", Domain: domain.DomainEmployees, Priority: domain.PriorityCritical, Estimate: 2 * time.Second},
		},
	},
	{
		Name:      "saudization_rate",
		Domain:    domain.DomainEmployees,
		Objective: "Report the current saudization position",
		Keywords:  []string{"saudization", "saudi", "nitaqat", "rate", "nationality", "nationals"},
		Steps: []stepTemplate{
			{Name: "Get headcount summary", Tool: "get_headcount_summary", Domain: domain.DomainEmployees, Priority: domain.PriorityCritical, Estimate: 2 * time.Second},
			{Name: "Check saudization status", Tool: "get_saudization_status", Domain: domain.DomainCompliance, Priority: domain.PriorityHigh, Estimate: 2 * time.Second, DependsOn: []int{0}},
		},
	},
	{
		Name:      "payroll_summary",
		Domain:    domain.DomainPayroll,
		Objective: "Summarize payroll costs",
		Keywords:  []string{"payroll", "salary", "salaries", "cost", "costs", "compensation", "total", "monthly"},
		Steps: []stepTemplate{
			{Name: "Get payroll summary", Tool: "get_payroll_summary", Domain: domain.DomainPayroll, Priority: domain.PriorityCritical, Estimate: 3 * time.Second},
		},
	},
	{
		Name:      "document_expiry",
		Domain:    domain.DomainDocuments,
		Objective: "List documents close to expiry",
		Keywords:  []string{"document", "documents", "contract", "contracts", "expiring", "expiry", "expired", "iqama"},
		Steps: []stepTemplate{
			{Name: "List expiring documents", Tool: "list_expiring_documents", Domain: domain.DomainDocuments, Priority: domain.PriorityHigh, Estimate: 2 * time.Second},
		},
	},
	{
		Name:      "performance_overview",
		Domain:    domain.DomainPerformance,
		Objective: "Summarize performance review results",
		Keywords:  []string{"performance", "rating", "ratings", "review", "reviews", "appraisal", "performers"},
		Steps: []stepTemplate{
			{Name: "Get performance overview", Tool: "get_performance_overview", Domain: domain.DomainPerformance, Priority: domain.PriorityHigh, Estimate: 3 * time.Second},
		},
	},
	{
		Name:      "recruitment_pipeline",
		Domain:    domain.DomainRecruitment,
		Objective: "Summarize the recruitment pipeline",
		Keywords:  []string{"recruitment", "hiring", "candidates", "vacancies", "vacancy", "pipeline", "applicants"},
		Steps: []stepTemplate{
			{Name: "Get recruitment pipeline", Tool: "get_recruitment_pipeline", Domain: domain.DomainRecruitment, Priority: domain.PriorityHigh, Estimate: 2 * time.Second},
		},
	},
	{
		Name:      "attendance_summary",
		Domain:    domain.DomainAttendance,
		Objective: "Summarize attendance and leave",
		Keywords:  []string{"attendance", "absence", "absences", "leave", "overtime", "late"},
		Steps: []stepTemplate{
			{Name: "Get attendance summary", Tool: "get_attendance_summary", Domain: domain.DomainAttendance, Priority: domain.PriorityMedium, Estimate: 2 * time.Second},
		},
	},
	{
		Name:      "comprehensive_report",
		Domain:    domain.DomainAnalytics,
		Objective: "Produce a comprehensive workforce report",
		Keywords:  []string{"comprehensive", "report", "overview", "full", "complete", "workforce"},
		Steps: []stepTemplate{
			{Name: "Get headcount summary", Tool: "get_headcount_summary", Domain: domain.DomainEmployees, Priority: domain.PriorityCritical, Estimate: 2 * time.Second},
			{Name: "Get payroll summary", Tool: "get_payroll_summary", Domain: domain.DomainPayroll, Priority: domain.PriorityCritical, Estimate: 3 * time.Second},
			{Name: "Aggregate workforce analysis", Tool: "ai_analysis", Domain: domain.DomainAnalytics, Priority: domain.PriorityMedium, Estimate: 5 * time.Second, DependsOn: []int{0, 1}},
		},
	},
}

// capability is one registered operation of a domain, used when no pattern
// matches: every capability of the target domain becomes a step in table
// order, chained linearly.
type capability struct {
	Name     string
	Tool     string
	Priority domain.StepPriority
	Estimate time.Duration
}

var domainCapabilities = []struct {
	Domain domain.Domain
	Caps   []capability
}{
	{domain.DomainEmployees, []capability{
		{"Get headcount summary", "get_headcount_summary", domain.PriorityHigh, 2 * time.Second},
		{"Get employee demographics", "get_employee_demographics", domain.PriorityMedium, 2 * time.Second},
	}},
	{domain.DomainRecruitment, []capability{
		{"Get recruitment pipeline", "get_recruitment_pipeline", domain.PriorityHigh, 2 * time.Second},
	}},
	{domain.DomainPayroll, []capability{
		{"Get payroll summary", "get_payroll_summary", domain.PriorityHigh, 3 * time.Second},
		{"Get cost breakdown", "get_cost_breakdown", domain.PriorityMedium, 3 * time.Second},
	}},
	{domain.DomainCompliance, []capability{
		{"Check saudization status", "get_saudization_status", domain.PriorityHigh, 2 * time.Second},
		{"List expiring documents", "list_expiring_documents", domain.PriorityMedium, 2 * time.Second},
	}},
	{domain.DomainPerformance, []capability{
		{"Get performance overview", "get_performance_overview", domain.PriorityHigh, 3 * time.Second},
	}},
	{domain.DomainTraining, []capability{
		{"Get training summary", "get_training_summary", domain.PriorityMedium, 2 * time.Second},
	}},
	{domain.DomainAttendance, []capability{
		{"Get attendance summary", "get_attendance_summary", domain.PriorityHigh, 2 * time.Second},
	}},
	{domain.DomainDocuments, []capability{
		{"List expiring documents", "list_expiring_documents", domain.PriorityHigh, 2 * time.Second},
	}},
	// analytics has no registered capability on purpose: requests routed
	// there fall back to the generic AI analysis step.
}

// complexityGroups are checked in order; the first group with a keyword hit
// classifies the plan. No hit means simple.
var complexityGroups = []struct {
	Complexity domain.Complexity
	Keywords   []string
}{
	{domain.ComplexityAdvanced, []string{"forecast", "predict", "simulate", "optimize", "model"}},
	{domain.ComplexityComplex, []string{"compare", "correlate", "comprehensive", "across", "trend", "trends"}},
	{domain.ComplexityModerate, []string{"report", "summary", "breakdown", "analyze", "overview"}},
}

func capabilitiesFor(dom domain.Domain) []capability {
	for _, entry := range domainCapabilities {
		if entry.Domain == dom {
			return entry.Caps
		}
	}
	return nil
}

// Catalog returns every routable domain with its capability names, in
// registration order. Analytics reports only the generic analysis step it
// falls back to.
func Catalog() []domain.DomainInfo {
	infos := make([]domain.DomainInfo, 0, len(domainCapabilities)+1)
	for _, entry := range domainCapabilities {
		names := make([]string, 0, len(entry.Caps))
		for _, cap := range entry.Caps {
			names = append(names, cap.Tool)
		}
		infos = append(infos, domain.DomainInfo{Domain: entry.Domain, Capabilities: names})
	}
	infos = append(infos, domain.DomainInfo{Domain: domain.DomainAnalytics, Capabilities: []string{fallbackTool}})
	return infos
}
