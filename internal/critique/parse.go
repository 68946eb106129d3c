package critique

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

var compiledSchema = mustCompileSchema(recordSchema)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("compile critique schema: %v", err))
	}
	return s
}

// ParseError reports generated output that does not conform to the record schema.
type ParseError struct {
	Reason string
	Issues []string
}

func (e *ParseError) Error() string {
	if len(e.Issues) == 0 {
		return "parse critique: " + e.Reason
	}
	return fmt.Sprintf("parse critique: %s: %s", e.Reason, strings.Join(e.Issues, "; "))
}

// ParseRecord strictly parses raw model output into a Record. The returned record
// carries the values exactly as generated.
func ParseRecord(raw string) (*Record, error) {
	doc := extractJSON(raw)
	if doc == "" {
		return nil, &ParseError{Reason: "no JSON object found"}
	}
	if !gjson.Valid(doc) {
		return nil, &ParseError{Reason: "malformed JSON"}
	}
	if !gjson.Parse(doc).IsObject() {
		return nil, &ParseError{Reason: "top-level value is not an object"}
	}

	result, err := compiledSchema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			issues = append(issues, e.String())
		}
		return nil, &ParseError{Reason: "schema mismatch", Issues: issues}
	}

	var r Record
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	r.Source = SourceGenerated
	return &r, nil
}

// extractJSON strips markdown fences and surrounding prose from a model answer.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
	}
	if gjson.Valid(raw) {
		return raw
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
