// Package domain defines the core domain models for the query pipeline.
package domain

// Domain is one of the fixed HR capability areas used to route a request.
type Domain string

const (
	DomainEmployees   Domain = "employees"
	DomainRecruitment Domain = "recruitment"
	DomainPayroll     Domain = "payroll"
	DomainCompliance  Domain = "compliance"
	DomainPerformance Domain = "performance"
	DomainTraining    Domain = "training"
	DomainAttendance  Domain = "attendance"
	DomainDocuments   Domain = "documents"
	DomainAnalytics   Domain = "analytics"
)

// PlanStatus represents the lifecycle status of an execution plan.
// Transitions are monotonic: draft -> ready -> executing -> completed|failed.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusReady     PlanStatus = "ready"
	PlanStatusExecuting PlanStatus = "executing"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusFailed    PlanStatus = "failed"
)

// StepStatus represents the status of a single plan step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepPriority classifies how important a step is to the plan.
// A failing critical step aborts the whole plan.
type StepPriority string

const (
	PriorityCritical StepPriority = "critical"
	PriorityHigh     StepPriority = "high"
	PriorityMedium   StepPriority = "medium"
	PriorityLow      StepPriority = "low"
)

// PriorityRank returns the sort rank of a priority (critical first).
func PriorityRank(p StepPriority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Complexity classifies how involved a plan is expected to be.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
	ComplexityAdvanced Complexity = "advanced"
)

// Stage is a state of the pipeline controller.
type Stage string

const (
	StageValidation Stage = "validation"
	StagePlanning   Stage = "planning"
	StageExecution  Stage = "execution"
	StageAuditing   Stage = "auditing"
	StageReplanning Stage = "replanning"
	StageCompleted  Stage = "completed"
)

// IssueCategory classifies an audit issue.
type IssueCategory string

const (
	IssueQuality      IssueCategory = "quality"
	IssueConsistency  IssueCategory = "consistency"
	IssueAccuracy     IssueCategory = "accuracy"
	IssueCompleteness IssueCategory = "completeness"
	IssueLogic        IssueCategory = "logic"
)

// Severity classifies how bad an audit issue is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)
