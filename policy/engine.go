// Package policy gates capability invocations through OPA. Every step the
// executor dispatches is evaluated against the rego policy first, so tenant
// isolation rules live in policy text rather than Go code.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decisions returned by Evaluate.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given rego policy content and prepares it for
// evaluation.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.capability_policy.decision"),
		rego.Module("capability_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the capability policy for one invocation. Input keys:
// tool_name, tenant_id, user_id, params. Returns the decision and an
// optional reason.
func (e *Engine) Evaluate(ctx context.Context, input map[string]any) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy is expected to define a default; treat silence as allow.
		return DecisionAllow, "default", nil
	}

	val := results[0].Expressions[0].Value
	switch v := val.(type) {
	case string:
		return v, "", nil
	case map[string]any:
		decision, _ := v["decision"].(string)
		reason, _ := v["reason"].(string)
		if decision == "" {
			decision = DecisionAllow
		}
		return decision, reason, nil
	}
	return DecisionAllow, "unexpected return type", nil
}

// DefaultPolicy is the built-in capability policy. Export-class tools and
// payroll reads require a tenant context; everything else is allowed.
const DefaultPolicy = `
package capability_policy

import rego.v1

default decision := {"decision": "allow", "reason": ""}

decision := {"decision": "block", "reason": "export requires a tenant context"} if {
	startswith(input.tool_name, "export_")
	not tenant_present
}

decision := {"decision": "block", "reason": "payroll data requires a tenant context"} if {
	startswith(input.tool_name, "get_payroll")
	not tenant_present
}

tenant_present if input.tenant_id != ""
`
