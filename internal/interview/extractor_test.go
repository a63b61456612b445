package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validEvaluationJSON = `{
	"FinalEvaluation": {
		"SoftSkillScore": "7/10",
		"OverallFeedback": "Communicates clearly, needs deeper system design answers."
	},
	"QuestionPairs": [
		{
			"QuestionNumber": "1",
			"Question": "Walk me through a service you designed.",
			"FinalScore": "8/10",
			"Feedback": [
				{"Metric": "Clarity", "Evaluation": "Well structured", "Score": "8/10"}
			],
			"PotentialAreasOfImprovement": "Quantify results.",
			"IdealAnswer": "A STAR-format answer with concrete metrics."
		}
	]
}`

func TestExtract_PlainQuestionIsNotTerminal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no braces", "Tell me about a time you disagreed with a teammate."},
		{"braces but not json", "In Go, a struct literal looks like {Name: value}. How would you use one?"},
		{"valid json without marker keys", `Consider this payload: {"user": "anya", "active": true}. How would you validate it?`},
		{"empty string", ""},
		{"only closing brace", "} trailing noise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evaluation, err := Extract(tt.raw)
			require.NoError(t, err)
			assert.Nil(t, evaluation)
		})
	}
}

func TestExtract_TerminalEvaluation(t *testing.T) {
	evaluation, err := Extract(validEvaluationJSON)
	require.NoError(t, err)
	require.NotNil(t, evaluation)

	assert.Equal(t, "7/10", evaluation.FinalEvaluation.SoftSkillScore)
	require.Len(t, evaluation.QuestionPairs, 1)
	assert.Equal(t, "8/10", evaluation.QuestionPairs[0].FinalScore)
	require.Len(t, evaluation.QuestionPairs[0].Feedback, 1)
	assert.Equal(t, "Clarity", evaluation.QuestionPairs[0].Feedback[0].Metric)
}

func TestExtract_FencedAndUnfencedAgree(t *testing.T) {
	fenced := "Here is the evaluation:\n```json\n" + validEvaluationJSON + "\n```\nThanks for your time!"

	fromFenced, err := Extract(fenced)
	require.NoError(t, err)
	fromPlain, err := Extract(validEvaluationJSON)
	require.NoError(t, err)

	assert.Equal(t, fromPlain, fromFenced)
}

func TestExtract_SingleMarkerKeyTriggersValidation(t *testing.T) {
	// Carrying only one of the two marker keys is a terminal attempt that
	// fails schema validation, not a question.
	raw := `{"FinalEvaluation": {"SoftSkillScore": "7/10", "OverallFeedback": "ok"}}`

	evaluation, err := Extract(raw)
	require.Error(t, err)
	assert.Nil(t, evaluation)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestExtract_MalformedScoreIsHardError(t *testing.T) {
	raw := `{
		"FinalEvaluation": {"SoftSkillScore": "seven", "OverallFeedback": "ok"},
		"QuestionPairs": []
	}`

	evaluation, err := Extract(raw)
	require.Error(t, err)
	assert.Nil(t, evaluation)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
