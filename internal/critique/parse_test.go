package critique

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGenerated = `{
  "overall_score": 3.8,
  "structure_score": 4.0,
  "keywords_score": 3.5,
  "action_verbs_score": 4.0,
  "quantified_impact_score": 3.0,
  "readability_score": 4.5,
  "detailed_feedback": {
    "structure": "Clear sections.",
    "keywords": "Good technical terms.",
    "action_verbs": "Strong verbs throughout.",
    "quantified_impact": "Some metrics present.",
    "readability": "Easy to scan."
  },
  "improvement_suggestions": {
    "structure": ["Add a summary section"],
    "keywords": ["Mirror the job description"],
    "action_verbs": ["Vary the opening verbs"],
    "quantified_impact": ["Quantify the migration project", "Add team sizes"],
    "readability": ["Shorten long bullets"]
  }
}`

func TestParseRecordValid(t *testing.T) {
	r, err := ParseRecord(validGenerated)
	require.NoError(t, err)

	assert.InDelta(t, 3.8, r.OverallScore, 1e-9)
	assert.InDelta(t, 4.5, r.ReadabilityScore, 1e-9)
	assert.Equal(t, "Strong verbs throughout.", r.DetailedFeedback.ActionVerbs)
	assert.Equal(t, []string{"Quantify the migration project", "Add team sizes"}, r.ImprovementSuggestions.QuantifiedImpact)
	assert.Equal(t, SourceGenerated, r.Source)
}

func TestParseRecordStripsFencesAndProse(t *testing.T) {
	inputs := []string{
		"```json\n" + validGenerated + "\n```",
		"```\n" + validGenerated + "\n```",
		"Here is the critique you asked for:\n" + validGenerated + "\nLet me know if you need more.",
	}
	for _, in := range inputs {
		r, err := ParseRecord(in)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, r.StructureScore, 1e-9)
	}
}

func TestParseRecordKeepsOutOfRangeScores(t *testing.T) {
	r, err := ParseRecord(strings.Replace(validGenerated, `"keywords_score": 3.5`, `"keywords_score": 7`, 1))
	require.NoError(t, err)
	assert.InDelta(t, 7.0, r.KeywordsScore, 1e-9)
}

func TestParseRecordRejectsInvalidOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "prose only", raw: "I cannot evaluate this resume."},
		{name: "truncated", raw: validGenerated[:len(validGenerated)/2]},
		{name: "array", raw: "[1, 2, 3]"},
		{name: "missing score", raw: strings.Replace(validGenerated, `"readability_score": 4.5,`, "", 1)},
		{name: "string score", raw: strings.Replace(validGenerated, `"structure_score": 4.0`, `"structure_score": "4.0"`, 1)},
		{name: "null score", raw: strings.Replace(validGenerated, `"structure_score": 4.0`, `"structure_score": null`, 1)},
		{name: "missing feedback key", raw: strings.Replace(validGenerated, `"readability": "Easy to scan."`, `"tone": "Easy to scan."`, 1)},
		{name: "extra feedback key", raw: strings.Replace(validGenerated, `"structure": "Clear sections.",`, `"structure": "Clear sections.", "formatting": "ok",`, 1)},
		{name: "feedback as list", raw: strings.Replace(validGenerated, `"keywords": "Good technical terms."`, `"keywords": ["Good technical terms."]`, 1)},
		{name: "suggestion as string", raw: strings.Replace(validGenerated, `"keywords": ["Mirror the job description"]`, `"keywords": "Mirror the job description"`, 1)},
		{name: "empty suggestions", raw: strings.Replace(validGenerated, `"readability": ["Shorten long bullets"]`, `"readability": []`, 1)},
		{name: "non-string suggestion", raw: strings.Replace(validGenerated, `"readability": ["Shorten long bullets"]`, `"readability": [3]`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRecord(tt.raw)
			require.Error(t, err)
			assert.Nil(t, r)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParseRecordAllowsExtraTopLevelFields(t *testing.T) {
	raw := strings.Replace(validGenerated, `"overall_score": 3.8,`, `"overall_score": 3.8, "notes": "extra",`, 1)
	_, err := ParseRecord(raw)
	require.NoError(t, err)
}
