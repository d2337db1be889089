package domain

import "time"

// ExecutionPlan is an ordered set of steps synthesized for one validated
// request. The planner owns it until execution settles, then the auditor
// reads it. Replanning always produces a new plan object; a completed plan
// is never re-entered.
type ExecutionPlan struct {
	PlanID      string        `json:"plan_id"`
	Query       string        `json:"query"`
	Objective   string        `json:"objective"`
	Domain      Domain        `json:"domain,omitempty"`
	Steps       []*Step       `json:"steps"`
	Estimated   time.Duration `json:"estimated_duration"`
	Complexity  Complexity    `json:"complexity"`
	Confidence  int           `json:"confidence"`
	Status      PlanStatus    `json:"status"`
	Summary     string        `json:"summary,omitempty"`
	Iteration   int           `json:"iteration"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Step is one element of a plan, bound to a named capability.
type Step struct {
	StepID    string         `json:"step_id"`
	Name      string         `json:"name"`
	Tool      string         `json:"tool"`
	Domain    Domain         `json:"domain"`
	Params    map[string]any `json:"params,omitempty"`
	DependsOn []string       `json:"depends_on,omitempty"`
	Estimate  time.Duration  `json:"estimate"`
	Priority  StepPriority   `json:"priority"`
	Status    StepStatus     `json:"status"`
	Result    *StepResult    `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Clone returns a deep copy of the step with a fresh pending status and no
// result. Used by replanning, which never mutates steps of a settled plan.
func (s *Step) Clone() *Step {
	params := make(map[string]any, len(s.Params))
	for k, v := range s.Params {
		params[k] = v
	}
	deps := make([]string, len(s.DependsOn))
	copy(deps, s.DependsOn)
	return &Step{
		StepID:    s.StepID,
		Name:      s.Name,
		Tool:      s.Tool,
		Domain:    s.Domain,
		Params:    params,
		DependsOn: deps,
		Estimate:  s.Estimate,
		Priority:  s.Priority,
		Status:    StepStatusPending,
	}
}

// CompletedSteps returns the steps that reached completed, in plan order.
func (p *ExecutionPlan) CompletedSteps() []*Step {
	var out []*Step
	for _, s := range p.Steps {
		if s.Status == StepStatusCompleted {
			out = append(out, s)
		}
	}
	return out
}

// FailedSteps returns the steps that reached failed, in plan order.
func (p *ExecutionPlan) FailedSteps() []*Step {
	var out []*Step
	for _, s := range p.Steps {
		if s.Status == StepStatusFailed {
			out = append(out, s)
		}
	}
	return out
}
