package domain

// AuditResult is the auditor's verdict for one completed step.
// Overall is the arithmetic mean of the three sub-scores. Results are
// appended per iteration and never mutated.
type AuditResult struct {
	AuditID         string   `json:"audit_id"`
	StepID          string   `json:"step_id"`
	Tool            string   `json:"tool"`
	Category        Category `json:"category"`
	Quality         int      `json:"quality"`
	Consistency     int      `json:"consistency"`
	Accuracy        int      `json:"accuracy"`
	Overall         int      `json:"overall"`
	Issues          []Issue  `json:"issues,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	NeedsReplanning bool     `json:"needs_replanning"`
	Confidence      int      `json:"confidence"`
}

// Issue is a single problem detected during auditing.
type Issue struct {
	Category     IssueCategory `json:"category"`
	Severity     Severity      `json:"severity"`
	Description  string        `json:"description"`
	Fields       []string      `json:"fields,omitempty"`
	SuggestedFix string        `json:"suggested_fix,omitempty"`
}

// HasCritical reports whether any issue carries critical severity.
func HasCritical(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// CrossDomainValidation compares results contributed by two different
// domains within the same plan.
type CrossDomainValidation struct {
	Domains        [2]Domain `json:"domains"`
	Metrics        []string  `json:"metrics"`
	Expected       int       `json:"expected_consistency"`
	Actual         int       `json:"actual_consistency"`
	Contradictions []string  `json:"contradictions,omitempty"`
	Resolution     string    `json:"resolution,omitempty"`
}

// PlanAudit is the aggregated audit outcome for one plan iteration.
type PlanAudit struct {
	Results         []AuditResult           `json:"results"`
	OverallQuality  int                     `json:"overall_quality"`
	NeedsReplanning bool                    `json:"needs_replanning"`
	CrossDomain     []CrossDomainValidation `json:"cross_domain,omitempty"`
	Recommendations []string                `json:"recommendations,omitempty"`
}

// ReplanStrategy is the auditor's prescription for the next planning pass.
type ReplanStrategy struct {
	Label     string   `json:"label"`
	Modified  []*Step  `json:"modified,omitempty"`
	Added     []*Step  `json:"added,omitempty"`
	Removed   []string `json:"removed,omitempty"`
	Reasoning []string `json:"reasoning,omitempty"`
}
