package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/jobradar/internal/types"
)

// Keyword tables for title-based inference. Order matters: the senior scan
// runs before the entry scan, so a title matching both resolves senior.
var (
	seniorKeywords = []string{
		"senior", "lead", "principal", "staff", "architect",
		"head of", "director", "vp ", "manager",
	}
	entryKeywords = []string{
		"junior", "entry", "intern", "associate", "trainee", "graduate",
	}
)

// InferSeniority derives the experience level from the listing title alone.
// Titles matching no keyword default to mid.
func InferSeniority(title string) types.Seniority {
	lower := strings.ToLower(title)
	for _, kw := range seniorKeywords {
		if strings.Contains(lower, kw) {
			return types.SenioritySenior
		}
	}
	for _, kw := range entryKeywords {
		if strings.Contains(lower, kw) {
			return types.SeniorityEntry
		}
	}
	return types.SeniorityMid
}

// categoryPatterns is scanned in order; the first pattern matching the
// concatenated title+tags text wins.
var categoryPatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"Technology", regexp.MustCompile(`software|developer|engineer|programming|coding|frontend|backend|fullstack`)},
	{"Marketing", regexp.MustCompile(`marketing|seo|content|social media|brand`)},
	{"Design", regexp.MustCompile(`design|ui|ux|graphic|creative`)},
	{"Sales", regexp.MustCompile(`sales|business development|account`)},
	{"Data", regexp.MustCompile(`data|analyst|analytics|scientist`)},
	{"Product", regexp.MustCompile(`product|manager|management`)},
	{"Finance", regexp.MustCompile(`finance|accounting|financial`)},
	{"HR", regexp.MustCompile(`hr|human resources|recruiting|talent`)},
	{"Customer Service", regexp.MustCompile(`customer|support|service`)},
	{"Healthcare", regexp.MustCompile(`healthcare|medical|nurse|doctor`)},
	{"Legal", regexp.MustCompile(`legal|lawyer|attorney`)},
	{"Education", regexp.MustCompile(`education|teacher|instructor`)},
}

// InferCategory assigns a coarse category label from the title and tag text.
func InferCategory(title string, tags []string) string {
	text := strings.ToLower(title + " " + strings.Join(tags, " "))
	for _, cp := range categoryPatterns {
		if cp.re.MatchString(text) {
			return cp.label
		}
	}
	return "Other"
}

// MapEmploymentType maps a free-text upstream job-type string onto the
// employment enum. The part-time check precedes the contract check; anything
// unmatched is full-time.
func MapEmploymentType(jobType string) types.EmploymentType {
	lower := strings.ToLower(jobType)
	if strings.Contains(lower, "part") {
		return types.EmploymentPartTime
	}
	if strings.Contains(lower, "contract") ||
		strings.Contains(lower, "freelance") ||
		strings.Contains(lower, "contractor") {
		return types.EmploymentContract
	}
	return types.EmploymentFullTime
}
