package domain

import "time"

// AnalysisRecord is one entry of the append-only analysis history,
// keyed by tenant. Records are written once and never updated.
type AnalysisRecord struct {
	AnalysisID      string    `json:"analysis_id"`
	TenantID        string    `json:"tenant_id"`
	Domain          Domain    `json:"domain"`
	Specialist      string    `json:"specialist"`
	Query           string    `json:"query"`
	OverallQuality  int       `json:"overall_quality"`
	Iterations      int       `json:"iterations"`
	AuditedSteps    int       `json:"audited_steps"`
	Recommendations []string  `json:"recommendations,omitempty"`
	ExecutionMs     int64     `json:"execution_ms"`
	CreatedAt       time.Time `json:"created_at"`
}
