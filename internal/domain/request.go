package domain

// QueryRequest is the transport-level request to run one query through
// the pipeline.
type QueryRequest struct {
	TenantID  string `json:"tenant_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Query     string `json:"query"`
}

// Query response statuses.
const (
	QueryStatusCompleted          = "completed"
	QueryStatusNeedsClarification = "needs_clarification"
	QueryStatusFailed             = "failed"
)

// QueryMeta carries observability metadata attached to a completed result.
type QueryMeta struct {
	PlanID         string `json:"plan_id,omitempty"`
	Iterations     int    `json:"iterations"`
	OverallQuality int    `json:"overall_quality"`
	AuditedSteps   int    `json:"audited_steps"`
	ExecutionMs    int64  `json:"execution_ms"`
}

// QueryResponse is the transport-level response for one query.
// A clarification outcome is a normal response, not an error.
type QueryResponse struct {
	Status          string            `json:"status"`
	Domain          Domain            `json:"domain,omitempty"`
	Analysis        string            `json:"analysis,omitempty"`
	Insights        []string          `json:"insights,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Confidence      int               `json:"confidence,omitempty"`
	Validation      *ValidationResult `json:"validation,omitempty"`
	Clarification   *Clarification    `json:"clarification,omitempty"`
	Meta            *QueryMeta        `json:"meta,omitempty"`
}

// DomainInfo describes one registered capability domain.
type DomainInfo struct {
	Domain       Domain   `json:"domain"`
	Capabilities []string `json:"capabilities,omitempty"`
}
