package backend

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// StructuredReview is the strict shape the live judge must return: rubric
// scores (0-100 integers, usually including "overall"), up to three
// highlights and improvements, and free-form notes.
type StructuredReview struct {
	Scores       map[string]int `json:"scores" mapstructure:"scores"`
	Highlights   []string       `json:"highlights" mapstructure:"highlights"`
	Improvements []string       `json:"improvements" mapstructure:"improvements"`
	Notes        string         `json:"notes" mapstructure:"notes"`
}

const reviewSchemaJSON = `{
	"type": "object",
	"required": ["scores", "highlights", "improvements", "notes"],
	"properties": {
		"scores": {
			"type": "object",
			"additionalProperties": {
				"type": "integer",
				"minimum": 0,
				"maximum": 100
			}
		},
		"highlights": {
			"type": "array",
			"items": {"type": "string"}
		},
		"improvements": {
			"type": "array",
			"items": {"type": "string"}
		},
		"notes": {"type": "string"}
	}
}`

var reviewSchema = mustCompileReviewSchema()

func mustCompileReviewSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(reviewSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("parsing review schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("review.json", doc); err != nil {
		panic(fmt.Sprintf("adding review schema resource: %v", err))
	}
	return compiler.MustCompile("review.json")
}

// DecodeReview parses a raw judge completion into a StructuredReview. Models
// tend to wrap JSON in markdown fences or prose, so the outermost JSON
// object is extracted first. Any shape mismatch is a *ParseError.
func DecodeReview(raw string) (*StructuredReview, error) {
	text := strings.TrimSpace(extractJSON(stripMarkdownFences(raw)))
	if text == "" {
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("no JSON content in judge response")}
	}

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	if err := reviewSchema.Validate(value); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	var review StructuredReview
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		// JSON numbers arrive as float64; the schema has already pinned
		// them to integers.
		WeaklyTypedInput: true,
		Result:           &review,
	})
	if err != nil {
		return nil, fmt.Errorf("building review decoder: %w", err)
	}
	if err := decoder.Decode(value); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	return &review, nil
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?```")

func stripMarkdownFences(text string) string {
	if matches := fenceRe.FindStringSubmatch(text); len(matches) > 1 {
		return matches[1]
	}
	return text
}

func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
