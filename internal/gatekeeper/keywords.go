package gatekeeper

import "github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"

// Scoring thresholds. Valid = clarity >= ClarityThreshold AND
// specificity >= SpecificityThreshold AND confidence >= ConfidenceThreshold.
const (
	ClarityThreshold     = 70
	SpecificityThreshold = 60
	ConfidenceThreshold  = 75
)

// Scoring baselines and adjustments. Kept as data so they can be tuned and
// tested independently of the pipeline logic.
const (
	clarityBaseline     = 50
	specificityBaseline = 40
	confidenceBaseline  = 60

	vaguePenalty         = 10
	precisionBonus       = 10
	questionWordBonus    = 15
	shortRequestPenalty  = 20
	shortRequestTokens   = 3
	numericBonus         = 15
	dateTimeBonus        = 10
	properNounBonus      = 10
	actionPhraseBonus    = 10
	domainKeywordBonus   = 5
	domainKeywordCap     = 15
	tenantContextBonus   = 10
	userContextBonus     = 5
	mediumLengthBonus    = 10
	mediumLengthTokens   = 5
	longLengthBonus      = 5
	longLengthTokens     = 10
	subjectVerbBonus     = 10
)

// vagueMarkers are indefinite quantifiers and filler words that make a
// request harder to act on.
var vagueMarkers = []string{
	"some", "any", "stuff", "things", "something", "anything",
	"somehow", "whatever", "maybe", "various", "several", "etc",
}

// questionWords are direct interrogatives.
var questionWords = []string{"how", "what", "when", "where", "which", "who", "why"}

// precisionMarkers are action verbs and interrogative phrases that signal a
// concrete, answerable request.
var precisionMarkers = []string{
	"how many", "how much", "show", "list", "calculate", "compare",
	"generate", "analyze", "display", "count", "summarize",
}

// actionPhrases boost specificity: the request names the operation wanted.
var actionPhrases = []string{
	"how many", "show", "list", "calculate", "compare", "generate",
	"analyze", "summarize", "report", "find", "get", "export",
}

// dateTimeMarkers are coarse temporal references.
var dateTimeMarkers = []string{
	"today", "yesterday", "week", "month", "quarter", "year", "annual",
	"monthly", "quarterly", "q1", "q2", "q3", "q4",
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

// subjectTokens and verbTokens approximate a minimal subject+verb shape.
var subjectTokens = []string{
	"we", "i", "you", "our", "my", "company", "team", "department", "employees",
}

var verbTokens = []string{
	"have", "has", "is", "are", "do", "does", "need", "want",
	"show", "get", "work", "earn", "expire",
}

// domainKeywords maps each capability domain to its keyword list. Order is
// the registration order used to break inference ties.
var domainKeywords = []struct {
	Domain   domain.Domain
	Keywords []string
}{
	{domain.DomainEmployees, []string{
		"employee", "employees", "headcount", "staff", "workforce",
		"active", "saudization", "saudi", "nationality",
	}},
	{domain.DomainRecruitment, []string{
		"recruitment", "recruit", "hiring", "candidate", "candidates",
		"vacancy", "vacancies", "applicant", "interview", "offer",
	}},
	{domain.DomainPayroll, []string{
		"payroll", "salary", "salaries", "wage", "wages", "compensation",
		"pay", "gosi", "bonus", "allowance",
	}},
	{domain.DomainCompliance, []string{
		"compliance", "violation", "regulation", "nitaqat", "labor",
		"law", "visa", "iqama",
	}},
	{domain.DomainPerformance, []string{
		"performance", "rating", "ratings", "review", "reviews",
		"appraisal", "kpi", "objective",
	}},
	{domain.DomainTraining, []string{
		"training", "course", "courses", "learning", "certification", "skill",
	}},
	{domain.DomainAttendance, []string{
		"attendance", "leave", "absence", "overtime", "shift", "vacation",
	}},
	{domain.DomainDocuments, []string{
		"document", "documents", "contract", "contracts", "certificate",
		"expiry", "expiring", "expired",
	}},
	{domain.DomainAnalytics, []string{
		"analytics", "trend", "trends", "forecast", "dashboard",
		"insight", "insights", "metric", "metrics",
	}},
}

// exampleQueries are well-formed sample requests per domain, shown in
// clarification guidance.
var exampleQueries = map[domain.Domain][]string{
	domain.DomainEmployees: {
		"How many active employees do we have?",
		"What is our current saudization rate?",
	},
	domain.DomainRecruitment: {
		"How many open vacancies do we have this month?",
		"Show the candidates interviewed this quarter.",
	},
	domain.DomainPayroll: {
		"What is the total payroll cost for this month?",
		"Calculate the average salary by department.",
	},
	domain.DomainCompliance: {
		"Are we compliant with the current Nitaqat band?",
		"List employees with expiring iqamas this quarter.",
	},
	domain.DomainPerformance: {
		"What is the average performance rating this year?",
		"Show the completed performance reviews for Q2.",
	},
	domain.DomainTraining: {
		"How many employees completed the safety training course?",
	},
	domain.DomainAttendance: {
		"Show the overtime hours recorded this month.",
	},
	domain.DomainDocuments: {
		"List contracts expiring in the next 90 days.",
	},
	domain.DomainAnalytics: {
		"Generate a workforce trend report for this year.",
	},
}

// genericExamples are used when no domain could be inferred.
var genericExamples = []string{
	"How many active employees do we have?",
	"What is the total payroll cost for this month?",
	"List contracts expiring in the next 90 days.",
}

// Canonical missing-context labels.
const (
	missingTimePeriod    = "time_period"
	missingMetric        = "specific_metric"
	missingScope         = "department_or_scope"
	missingTenantContext = "tenant_context"
)
