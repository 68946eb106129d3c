package critique

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	fallbackKeywordsScore    = 3.5
	fallbackReadabilityScore = 4.0
)

var (
	referenceActionVerbs = []string{"managed", "led", "developed", "created", "implemented", "improved", "increased", "achieved"}

	quantifiedPattern = regexp.MustCompile(`\b\d+%?\b`)
)

// ComputeFallback scores a resume from lexical features only. It performs no I/O
// and returns the same record for the same inputs. filename does not affect scoring.
func ComputeFallback(resumeText, filename string) *Record {
	wordCount := len(strings.Fields(resumeText))
	verbCount := countActionVerbs(resumeText)
	quantifiedCount := len(quantifiedPattern.FindAllString(resumeText, -1))

	r := &Record{
		StructureScore:        RoundScore(Clamp(float64(wordCount)/100, 1.0, 5.0)),
		KeywordsScore:         RoundScore(fallbackKeywordsScore),
		ActionVerbsScore:      RoundScore(Clamp(float64(verbCount)*0.5+2.0, 0.0, 5.0)),
		QuantifiedImpactScore: RoundScore(Clamp(float64(quantifiedCount)*0.3+2.0, 0.0, 5.0)),
		ReadabilityScore:      RoundScore(fallbackReadabilityScore),
		DetailedFeedback: Feedback{
			Structure:        "Resume structure appears adequate based on length analysis.",
			Keywords:         "Consider adding more industry-specific keywords.",
			ActionVerbs:      fmt.Sprintf("Detected %d strong action verbs. Consider adding more variety.", verbCount),
			QuantifiedImpact: fmt.Sprintf("Found %d quantified achievements. Add more specific metrics.", quantifiedCount),
			Readability:      "Resume appears to have good readability.",
		},
		ImprovementSuggestions: Suggestions{
			Structure:        []string{"Ensure clear section headers", "Maintain consistent formatting"},
			Keywords:         []string{"Research job descriptions for relevant keywords", "Include technical skills section"},
			ActionVerbs:      []string{"Use more diverse action verbs", "Start bullet points with strong verbs"},
			QuantifiedImpact: []string{"Add specific numbers and percentages", "Quantify achievements where possible"},
			Readability:      []string{"Keep bullet points concise", "Use professional language throughout"},
		},
		Source: SourceFallback,
	}
	r.OverallScore = RoundScore(MeanScore(r.subScores()...))
	return r
}

// countActionVerbs counts reference verbs present anywhere in text; repeats count once.
func countActionVerbs(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, verb := range referenceActionVerbs {
		if strings.Contains(lower, verb) {
			count++
		}
	}
	return count
}
