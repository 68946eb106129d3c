package critique

import (
	"fmt"
	"math"
)

const (
	MinScore = 0.0
	MaxScore = 5.0

	// meanTolerance bounds the drift between overall_score and the rounded mean of the sub-scores.
	meanTolerance = 0.05
)

// Source tells callers which path produced a record.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Dimension is one of the five scored aspects of a resume.
type Dimension string

const (
	DimensionStructure        Dimension = "structure"
	DimensionKeywords         Dimension = "keywords"
	DimensionActionVerbs      Dimension = "action_verbs"
	DimensionQuantifiedImpact Dimension = "quantified_impact"
	DimensionReadability      Dimension = "readability"
)

// Dimensions returns the canonical dimension order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionStructure,
		DimensionKeywords,
		DimensionActionVerbs,
		DimensionQuantifiedImpact,
		DimensionReadability,
	}
}

// Feedback holds one prose paragraph per dimension.
type Feedback struct {
	Structure        string `json:"structure"`
	Keywords         string `json:"keywords"`
	ActionVerbs      string `json:"action_verbs"`
	QuantifiedImpact string `json:"quantified_impact"`
	Readability      string `json:"readability"`
}

// Get returns the feedback for d.
func (f Feedback) Get(d Dimension) string {
	switch d {
	case DimensionStructure:
		return f.Structure
	case DimensionKeywords:
		return f.Keywords
	case DimensionActionVerbs:
		return f.ActionVerbs
	case DimensionQuantifiedImpact:
		return f.QuantifiedImpact
	case DimensionReadability:
		return f.Readability
	}
	return ""
}

// Suggestions holds the ordered improvement suggestions per dimension.
type Suggestions struct {
	Structure        []string `json:"structure"`
	Keywords         []string `json:"keywords"`
	ActionVerbs      []string `json:"action_verbs"`
	QuantifiedImpact []string `json:"quantified_impact"`
	Readability      []string `json:"readability"`
}

// Get returns the suggestions for d.
func (s Suggestions) Get(d Dimension) []string {
	switch d {
	case DimensionStructure:
		return s.Structure
	case DimensionKeywords:
		return s.Keywords
	case DimensionActionVerbs:
		return s.ActionVerbs
	case DimensionQuantifiedImpact:
		return s.QuantifiedImpact
	case DimensionReadability:
		return s.Readability
	}
	return nil
}

// Record is the structured critique of a single resume.
type Record struct {
	OverallScore           float64     `json:"overall_score"`
	StructureScore         float64     `json:"structure_score"`
	KeywordsScore          float64     `json:"keywords_score"`
	ActionVerbsScore       float64     `json:"action_verbs_score"`
	QuantifiedImpactScore  float64     `json:"quantified_impact_score"`
	ReadabilityScore       float64     `json:"readability_score"`
	DetailedFeedback       Feedback    `json:"detailed_feedback"`
	ImprovementSuggestions Suggestions `json:"improvement_suggestions"`
	Source                 Source      `json:"source"`
}

// Scores returns the five sub-scores keyed by dimension.
func (r *Record) Scores() map[Dimension]float64 {
	return map[Dimension]float64{
		DimensionStructure:        r.StructureScore,
		DimensionKeywords:         r.KeywordsScore,
		DimensionActionVerbs:      r.ActionVerbsScore,
		DimensionQuantifiedImpact: r.QuantifiedImpactScore,
		DimensionReadability:      r.ReadabilityScore,
	}
}

func (r *Record) subScores() []float64 {
	return []float64{
		r.StructureScore,
		r.KeywordsScore,
		r.ActionVerbsScore,
		r.QuantifiedImpactScore,
		r.ReadabilityScore,
	}
}

// Validate checks score ranges, the overall/mean relation and suggestion completeness.
func (r *Record) Validate() error {
	if !inRange(r.OverallScore) {
		return fmt.Errorf("overall_score %v out of range [%v, %v]", r.OverallScore, MinScore, MaxScore)
	}
	for _, d := range Dimensions() {
		score := r.Scores()[d]
		if !inRange(score) {
			return fmt.Errorf("%s_score %v out of range [%v, %v]", d, score, MinScore, MaxScore)
		}
	}

	mean := RoundScore(MeanScore(r.subScores()...))
	if math.Abs(r.OverallScore-mean) > meanTolerance+1e-9 {
		return fmt.Errorf("overall_score %v does not match mean of sub-scores %v", r.OverallScore, mean)
	}

	for _, d := range Dimensions() {
		if len(r.ImprovementSuggestions.Get(d)) == 0 {
			return fmt.Errorf("improvement_suggestions.%s is empty", d)
		}
	}
	return nil
}

// normalize clamps and rounds each sub-score and recomputes the overall score from them.
func (r *Record) normalize() {
	r.StructureScore = RoundScore(Clamp(r.StructureScore, MinScore, MaxScore))
	r.KeywordsScore = RoundScore(Clamp(r.KeywordsScore, MinScore, MaxScore))
	r.ActionVerbsScore = RoundScore(Clamp(r.ActionVerbsScore, MinScore, MaxScore))
	r.QuantifiedImpactScore = RoundScore(Clamp(r.QuantifiedImpactScore, MinScore, MaxScore))
	r.ReadabilityScore = RoundScore(Clamp(r.ReadabilityScore, MinScore, MaxScore))
	r.OverallScore = RoundScore(MeanScore(r.subScores()...))
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && v >= MinScore && v <= MaxScore
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// RoundScore rounds half away from zero to one decimal place.
func RoundScore(v float64) float64 {
	return math.Round(v*10) / 10
}

// MeanScore returns the arithmetic mean, or 0 for no values.
func MeanScore(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
