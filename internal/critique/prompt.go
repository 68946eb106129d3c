package critique

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert resume reviewer and career coach with over 15 years of experience in talent acquisition and career development. Your task is to provide comprehensive, actionable feedback on resumes.

Analyze the resume across these specific criteria:

1. Structure & Organization (0-5 scale):
   - Clear sections (Contact, Summary, Experience, Education, Skills)
   - Logical flow and hierarchy
   - Consistent formatting
   - Appropriate length (1-2 pages)

2. Keywords & Industry Relevance (0-5 scale):
   - Industry-specific terminology
   - Role-relevant keywords
   - Technical skills mentioned
   - ATS-friendly language

3. Action Verbs Usage (0-5 scale):
   - Strong, specific action verbs
   - Variety in verb usage
   - Present/past tense consistency
   - Impact-focused language

4. Quantified Impact (0-5 scale):
   - Measurable achievements
   - Specific numbers, percentages, or metrics
   - Results-oriented statements
   - Business impact demonstration

5. Readability & Clarity (0-5 scale):
   - Clear, concise language
   - Appropriate grammar and spelling
   - Professional tone
   - Easy to scan and read

Provide scores for each category and an overall score equal to the mean of the five category scores. Include detailed feedback explaining your scores and specific, actionable improvement suggestions.`

// recordSchema is the JSON Schema a generated critique must satisfy.
const recordSchema = `{
  "type": "object",
  "required": [
    "overall_score",
    "structure_score",
    "keywords_score",
    "action_verbs_score",
    "quantified_impact_score",
    "readability_score",
    "detailed_feedback",
    "improvement_suggestions"
  ],
  "properties": {
    "overall_score": {"type": "number", "description": "Overall resume score (0-5), the mean of the five category scores"},
    "structure_score": {"type": "number", "description": "Resume structure and organization score (0-5)"},
    "keywords_score": {"type": "number", "description": "Industry keywords usage score (0-5)"},
    "action_verbs_score": {"type": "number", "description": "Action verbs usage score (0-5)"},
    "quantified_impact_score": {"type": "number", "description": "Quantified achievements score (0-5)"},
    "readability_score": {"type": "number", "description": "Readability and clarity score (0-5)"},
    "detailed_feedback": {
      "type": "object",
      "description": "Detailed feedback for each category",
      "required": ["structure", "keywords", "action_verbs", "quantified_impact", "readability"],
      "additionalProperties": false,
      "properties": {
        "structure": {"type": "string"},
        "keywords": {"type": "string"},
        "action_verbs": {"type": "string"},
        "quantified_impact": {"type": "string"},
        "readability": {"type": "string"}
      }
    },
    "improvement_suggestions": {
      "type": "object",
      "description": "Specific improvement suggestions for each category",
      "required": ["structure", "keywords", "action_verbs", "quantified_impact", "readability"],
      "additionalProperties": false,
      "properties": {
        "structure": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "keywords": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "action_verbs": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "quantified_impact": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "readability": {"type": "array", "minItems": 1, "items": {"type": "string"}}
      }
    }
  }
}`

// SystemPrompt returns the fixed evaluator instructions.
func SystemPrompt() string {
	return systemPrompt
}

// FormatInstructions tells the model how to shape its answer.
func FormatInstructions() string {
	return fmt.Sprintf(`Return your answer STRICTLY as a single JSON object that conforms to the JSON schema below.
Do not wrap it in markdown and do not add any text before or after it.

%s`, recordSchema)
}

// BuildUserPrompt composes the user message for one resume.
func BuildUserPrompt(resumeText, filename string) string {
	var b strings.Builder
	b.WriteString("Resume filename: ")
	b.WriteString(filename)
	b.WriteString("\n\nResume content:\n")
	b.WriteString(resumeText)
	b.WriteString("\n\n")
	b.WriteString(FormatInstructions())
	return b.String()
}
