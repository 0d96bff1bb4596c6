package parsing

import (
	"regexp"
	"strings"
)

const (
	structuredListCap     = 5
	requirementCandidates = 4
	minRequirementLen     = 20
	maxRequirementLen     = 200

	// Fallback sentinels, emitted whenever no usable data was found so the
	// requirement and benefit lists are never empty.
	requirementsFallback = "See full job description for requirements"
	benefitsFallback     = "See job posting for full benefits"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]`)

// requirementSignals are the keywords that mark a sentence as a probable
// requirement when no structured qualifications list exists upstream.
var requirementSignals = []string{
	"experience", "knowledge", "proficient", "familiar", "degree", "years", "skill",
}

// ExtractRequirements returns the requirement bullet list for a listing.
// A structured upstream qualifications list wins outright (first five
// entries); otherwise sentences of the stripped description are scanned for
// requirement signals, keeping the first few of plausible length.
func ExtractRequirements(description string, structured []string) []string {
	if len(structured) > 0 {
		return capList(structured, structuredListCap)
	}

	clean := StripHTML(description)
	var matched []string
	for _, sentence := range sentenceSplitRe.Split(clean, -1) {
		lower := strings.ToLower(sentence)
		for _, signal := range requirementSignals {
			if strings.Contains(lower, signal) {
				matched = append(matched, sentence)
				break
			}
		}
	}

	var requirements []string
	for _, sentence := range capList(matched, requirementCandidates) {
		trimmed := strings.TrimSpace(sentence)
		if n := len([]rune(trimmed)); n > minRequirementLen && n < maxRequirementLen {
			requirements = append(requirements, trimmed)
		}
	}

	if len(requirements) == 0 {
		return []string{requirementsFallback}
	}
	return requirements
}

// benefitGroups maps detection phrases to the canonical label emitted per
// group, scanned in this fixed order.
var benefitGroups = []struct {
	phrases []string
	label   string
}{
	{[]string{"health insurance", "medical"}, "Health Insurance"},
	{[]string{"401k", "retirement"}, "401(k)"},
	{[]string{"pto", "paid time off", "vacation"}, "Paid Time Off"},
	{[]string{"remote", "work from home"}, "Remote Work"},
	{[]string{"equity", "stock"}, "Equity/Stock Options"},
}

// ExtractBenefits returns the benefit bullet list for a listing, preferring
// a structured upstream benefits list and otherwise scanning the stripped
// description for known benefit phrases.
func ExtractBenefits(description string, structured []string) []string {
	if len(structured) > 0 {
		return capList(structured, structuredListCap)
	}

	clean := strings.ToLower(StripHTML(description))
	var benefits []string
	for _, group := range benefitGroups {
		for _, phrase := range group.phrases {
			if strings.Contains(clean, phrase) {
				benefits = append(benefits, group.label)
				break
			}
		}
	}

	if len(benefits) == 0 {
		return []string{benefitsFallback}
	}
	return benefits
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
