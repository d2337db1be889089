package domain

import "strings"

// Category is the coarse data-type family of a step result, inferred from
// the capability name. The auditor picks its checks by category.
type Category string

const (
	CategoryEmployee    Category = "employee"
	CategoryPayroll     Category = "payroll"
	CategoryDocument    Category = "document"
	CategoryPerformance Category = "performance"
	CategoryGeneric     Category = "generic"
)

// StepResult is a tagged union of the payload shapes capabilities return.
// Exactly the variant matching Category is set; everything else is nil.
// Unknown capabilities land in the generic variant.
type StepResult struct {
	Category    Category            `json:"category"`
	Employee    *EmployeeMetrics    `json:"employee,omitempty"`
	Payroll     *PayrollMetrics     `json:"payroll,omitempty"`
	Document    *DocumentMetrics    `json:"document,omitempty"`
	Performance *PerformanceMetrics `json:"performance,omitempty"`
	Generic     map[string]any      `json:"generic,omitempty"`
}

// EmployeeMetrics is a headcount/demographics summary.
type EmployeeMetrics struct {
	TotalEmployees  int            `json:"total_employees"`
	ActiveEmployees int            `json:"active_employees"`
	SaudiCount      int            `json:"saudi_count"`
	SaudizationRate float64        `json:"saudization_rate"`
	ByDepartment    map[string]int `json:"by_department,omitempty"`
}

// PayrollMetrics is a payroll cost summary.
type PayrollMetrics struct {
	TotalPayroll  float64 `json:"total_payroll"`
	AverageSalary float64 `json:"average_salary"`
	EmployeeCount int     `json:"employee_count"`
	Currency      string  `json:"currency,omitempty"`
}

// DocumentMetrics is a document compliance summary.
type DocumentMetrics struct {
	TotalCount    int `json:"total_count"`
	ExpiringCount int `json:"expiring_count"`
	ExpiredCount  int `json:"expired_count"`
}

// PerformanceMetrics is a performance review summary.
type PerformanceMetrics struct {
	AverageRating    float64 `json:"average_rating"`
	ReviewsCompleted int     `json:"reviews_completed"`
	ReviewsTotal     int     `json:"reviews_total"`
}

// categoryPrefixes maps capability-name markers to result categories.
var categoryPrefixes = []struct {
	marker   string
	category Category
}{
	{"headcount", CategoryEmployee},
	{"employee", CategoryEmployee},
	{"demographic", CategoryEmployee},
	{"saudization", CategoryEmployee},
	{"payroll", CategoryPayroll},
	{"salary", CategoryPayroll},
	{"cost", CategoryPayroll},
	{"document", CategoryDocument},
	{"contract", CategoryDocument},
	{"performance", CategoryPerformance},
	{"review", CategoryPerformance},
}

// CategoryForTool infers the result category from a capability name.
func CategoryForTool(tool string) Category {
	lower := strings.ToLower(tool)
	for _, cp := range categoryPrefixes {
		if strings.Contains(lower, cp.marker) {
			return cp.category
		}
	}
	return CategoryGeneric
}
