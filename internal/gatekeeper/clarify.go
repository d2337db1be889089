package gatekeeper

import (
	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// GenerateClarification builds the guidance returned for a rejected
// request: one issue per failing dimension, one question per missing
// context label, and domain-specific example requests.
func (g *Gatekeeper) GenerateClarification(query string, result domain.ValidationResult) domain.Clarification {
	var issues []string
	if result.Clarity < ClarityThreshold {
		issues = append(issues, "The question is not clear enough. Please rephrase it more directly.")
	}
	if result.Specificity < SpecificityThreshold {
		issues = append(issues, "The question lacks specific details such as a metric, time period or department.")
	}
	if result.Confidence < ConfidenceThreshold {
		issues = append(issues, "The intent of the question could not be understood with enough confidence.")
	}

	examples := genericExamples
	if result.Domain != "" {
		if ex, ok := exampleQueries[result.Domain]; ok {
			examples = ex
		}
	}

	return domain.Clarification{
		Issues:             issues,
		SuggestedQuestions: result.SuggestedQuestions,
		Examples:           examples,
	}
}
