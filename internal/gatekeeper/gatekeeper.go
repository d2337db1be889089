// Package gatekeeper scores incoming natural-language requests and rejects
// the ones that are too ambiguous to plan for. Scoring is heuristic: keyword
// tables plus fixed thresholds, all kept as data in keywords.go.
package gatekeeper

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/domain"
)

// Gatekeeper validates requests before they reach the planner. It is
// stateless; one instance can serve concurrent requests.
type Gatekeeper struct {
	logger *zap.Logger
}

// New creates a gatekeeper.
func New(logger *zap.Logger) *Gatekeeper {
	return &Gatekeeper{logger: logger}
}

// Validate scores a request for clarity, specificity and confidence and
// infers its target domain. It never returns an error: an empty or
// unscorable request simply scores zero on all dimensions.
func (g *Gatekeeper) Validate(query string, qctx domain.QueryContext) domain.ValidationResult {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return domain.ValidationResult{
			MissingContext: []string{missingMetric, missingTimePeriod, missingScope},
		}
	}

	tokens := tokenize(trimmed)
	lower := strings.ToLower(trimmed)

	result := domain.ValidationResult{
		Clarity:     g.scoreClarity(lower, tokens),
		Specificity: g.scoreSpecificity(trimmed, lower, tokens),
		Confidence:  g.scoreConfidence(tokens, qctx),
		Domain:      inferDomain(tokens, qctx.DomainHint),
	}
	result.MissingContext = missingContext(trimmed, lower, tokens, qctx)
	result.SuggestedQuestions = questionsFor(result.MissingContext)
	result.Valid = result.Clarity >= ClarityThreshold &&
		result.Specificity >= SpecificityThreshold &&
		result.Confidence >= ConfidenceThreshold
	if result.Valid {
		result.Query = query
	}

	g.logger.Debug("query validated",
		zap.Int("clarity", result.Clarity),
		zap.Int("specificity", result.Specificity),
		zap.Int("confidence", result.Confidence),
		zap.String("domain", string(result.Domain)),
		zap.Bool("valid", result.Valid),
	)
	return result
}

func (g *Gatekeeper) scoreClarity(lower string, tokens []string) int {
	score := clarityBaseline
	for _, marker := range vagueMarkers {
		if matches(lower, tokens, marker) {
			score -= vaguePenalty
		}
	}
	for _, marker := range precisionMarkers {
		if matches(lower, tokens, marker) {
			score += precisionBonus
		}
	}
	if hasAny(tokens, questionWords) {
		score += questionWordBonus
	}
	if len(tokens) < shortRequestTokens {
		score -= shortRequestPenalty
	}
	return clamp(score)
}

func (g *Gatekeeper) scoreSpecificity(original, lower string, tokens []string) int {
	score := specificityBaseline
	if hasNumeric(tokens) {
		score += numericBonus
	}
	if hasAnyList(lower, tokens, dateTimeMarkers) {
		score += dateTimeBonus
	}
	if hasProperNoun(original) {
		score += properNounBonus
	}
	if hasAnyList(lower, tokens, actionPhrases) {
		score += actionPhraseBonus
	}
	hits := domainKeywordHits(tokens)
	bonus := hits * domainKeywordBonus
	if bonus > domainKeywordCap {
		bonus = domainKeywordCap
	}
	score += bonus
	return clamp(score)
}

func (g *Gatekeeper) scoreConfidence(tokens []string, qctx domain.QueryContext) int {
	score := confidenceBaseline
	if qctx.TenantID != "" {
		score += tenantContextBonus
	}
	if qctx.UserID != "" {
		score += userContextBonus
	}
	if len(tokens) >= mediumLengthTokens {
		score += mediumLengthBonus
	}
	if len(tokens) >= longLengthTokens {
		score += longLengthBonus
	}
	if hasAny(tokens, subjectTokens) && hasAny(tokens, verbTokens) {
		score += subjectVerbBonus
	}
	return clamp(score)
}

// inferDomain picks the domain with the most keyword hits. Ties go to the
// first-registered domain; zero hits means no domain.
func inferDomain(tokens []string, hint domain.Domain) domain.Domain {
	best := domain.Domain("")
	bestHits := 0
	for _, entry := range domainKeywords {
		hits := 0
		for _, kw := range entry.Keywords {
			if hasToken(tokens, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = entry.Domain
			bestHits = hits
		}
	}
	if best == "" && hint != "" {
		return hint
	}
	return best
}

func missingContext(original, lower string, tokens []string, qctx domain.QueryContext) []string {
	var missing []string
	if !hasAnyList(lower, tokens, dateTimeMarkers) {
		missing = append(missing, missingTimePeriod)
	}
	if !hasNumeric(tokens) && !hasAnyList(lower, tokens, actionPhrases) {
		missing = append(missing, missingMetric)
	}
	if !hasProperNoun(original) && domainKeywordHits(tokens) == 0 {
		missing = append(missing, missingScope)
	}
	if qctx.TenantID == "" {
		missing = append(missing, missingTenantContext)
	}
	return missing
}

// questionsFor maps canonical missing-context labels to one suggested
// clarifying question each.
func questionsFor(missing []string) []string {
	var questions []string
	for _, label := range missing {
		switch label {
		case missingTimePeriod:
			questions = append(questions, "Which time period should the answer cover?")
		case missingMetric:
			questions = append(questions, "Which metric or figure are you asking about?")
		case missingScope:
			questions = append(questions, "Which department, team or group is this about?")
		case missingTenantContext:
			questions = append(questions, "Which organization should this query run against?")
		}
	}
	return questions
}

// tokenize lowercases, splits on whitespace and strips punctuation.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// matches checks a marker against the text: multi-word markers match as
// substrings, single words match whole tokens only.
func matches(lower string, tokens []string, marker string) bool {
	if strings.Contains(marker, " ") {
		return strings.Contains(lower, marker)
	}
	return hasToken(tokens, marker)
}

func hasAnyList(lower string, tokens []string, markers []string) bool {
	for _, m := range markers {
		if matches(lower, tokens, m) {
			return true
		}
	}
	return false
}

func hasAny(tokens []string, words []string) bool {
	for _, w := range words {
		if hasToken(tokens, w) {
			return true
		}
	}
	return false
}

func hasToken(tokens []string, word string) bool {
	for _, t := range tokens {
		if t == word {
			return true
		}
	}
	return false
}

func hasNumeric(tokens []string) bool {
	for _, t := range tokens {
		for _, r := range t {
			if unicode.IsDigit(r) {
				return true
			}
		}
	}
	return false
}

// hasProperNoun looks for a capitalized token after the first word.
func hasProperNoun(original string) bool {
	fields := strings.Fields(original)
	for i, f := range fields {
		if i == 0 {
			continue
		}
		r := []rune(f)[0]
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func domainKeywordHits(tokens []string) int {
	hits := 0
	for _, entry := range domainKeywords {
		for _, kw := range entry.Keywords {
			if hasToken(tokens, kw) {
				hits++
			}
		}
	}
	return hits
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
