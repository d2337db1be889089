package domain

// QueryContext carries tenant/session information for one request.
// Absence of context degrades gatekeeper scores but never errors.
type QueryContext struct {
	TenantID   string   `json:"tenant_id,omitempty"`
	UserID     string   `json:"user_id,omitempty"`
	SessionID  string   `json:"session_id,omitempty"`
	DomainHint Domain   `json:"domain_hint,omitempty"`
	Tools      []string `json:"tools,omitempty"`
}

// ValidationResult is the gatekeeper's verdict for one request.
// Valid is a pure function of the three scores against the fixed
// thresholds and is never mutated after creation.
type ValidationResult struct {
	Clarity            int      `json:"clarity"`
	Specificity        int      `json:"specificity"`
	Confidence         int      `json:"confidence"`
	MissingContext     []string `json:"missing_context,omitempty"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
	Valid              bool     `json:"valid"`
	Domain             Domain   `json:"domain,omitempty"`
	Query              string   `json:"query,omitempty"`
}

// Clarification is the guidance returned for a rejected request.
type Clarification struct {
	Issues             []string `json:"issues"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
	Examples           []string `json:"examples,omitempty"`
}
