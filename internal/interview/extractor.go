package interview

import (
	"encoding/json"
	"strings"

	"github.com/careerkit/career-compass/internal/llm"
	"github.com/careerkit/career-compass/internal/schemas"
	"github.com/careerkit/career-compass/internal/types"
)

// Extract classifies raw model text as a terminal evaluation or a plain
// next question.
//
// Detection is deliberately lenient: markdown fences are stripped, the
// substring between the first '{' and the last '}' is taken, and any
// failure to find or parse JSON means "still a question" (nil, nil).
// Validation is strict: once the parsed object carries an evaluation
// marker key, a schema violation is a hard *ValidationError: the model
// explicitly attempted a terminal answer and got the structure wrong.
func Extract(raw string) (*types.Evaluation, error) {
	cleaned := llm.StripAllFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return nil, nil
	}
	candidate := []byte(cleaned[start : end+1])

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(candidate, &keys); err != nil {
		// A question that happens to contain braces. Expected, non-fatal.
		return nil, nil
	}

	_, hasFinal := keys["FinalEvaluation"]
	_, hasPairs := keys["QuestionPairs"]
	if !hasFinal && !hasPairs {
		return nil, nil
	}

	if err := schemas.ValidateEvaluation(candidate); err != nil {
		return nil, &ValidationError{Message: "terminal evaluation does not match schema", Cause: err}
	}

	var evaluation types.Evaluation
	if err := json.Unmarshal(candidate, &evaluation); err != nil {
		return nil, &ParseError{Message: "failed to decode validated evaluation", Cause: err}
	}

	return &evaluation, nil
}
