package interview

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/career-compass/internal/llm"
	"github.com/careerkit/career-compass/internal/types"
)

// fakeClient replays scripted responses and records every prompt it saw.
type fakeClient struct {
	responses []string
	err       error
	prompts   []string
	calls     int
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	response := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return response, nil
}

func (f *fakeClient) GenerateParts(ctx context.Context, parts []llm.Part, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, "", tier)
}

func (f *fakeClient) GenerateJSON(ctx context.Context, parts []llm.Part, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, "", tier)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func TestTargetTurns(t *testing.T) {
	assert.Equal(t, 8, TargetTurns(types.DifficultyEasy))
	assert.Equal(t, 12, TargetTurns(types.DifficultyIntermediate))
	assert.Equal(t, 20, TargetTurns(types.DifficultyHard))
}

func TestUserRequestedEnd(t *testing.T) {
	tests := []struct {
		utterance string
		want      bool
	}{
		{"I think we can stop here", true},
		{"Let's END the interview", true},
		{"thank you for your time", true},
		{"Can I see my evaluation?", true},
		{"please finish up", true},
		{"my backend handles the frontend", false},
		{"the race finished before the stopwatch did", false},
		{"STOP", true},
		{"I extended the deadline", false},
		{"unstoppable momentum", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			assert.Equal(t, tt.want, UserRequestedEnd(tt.utterance))
		})
	}
}

func TestController_FirstTurnSeedsSession(t *testing.T) {
	client := &fakeClient{responses: []string{"Tell me about yourself."}}
	controller := NewController(client)
	session := types.NewSession(testConfig(types.DifficultyEasy))

	result, err := controller.Next(context.Background(), session, "")
	require.NoError(t, err)

	assert.Equal(t, "Tell me about yourself.", result.Question)
	assert.Nil(t, result.Evaluation)
	assert.Equal(t, types.StateInProgress, session.State)

	// system instruction, synthetic start utterance, first model question
	require.Len(t, session.Turns, 3)
	assert.Equal(t, types.RoleSystem, session.Turns[0].Role)
	assert.Equal(t, types.RoleUser, session.Turns[1].Role)
	assert.Equal(t, "Please start the interview.", session.Turns[1].Text)
	assert.Equal(t, types.RoleModel, session.Turns[2].Role)
}

func TestController_OneCallPerTurn(t *testing.T) {
	client := &fakeClient{responses: []string{"Question A", "Question B"}}
	controller := NewController(client)
	session := types.NewSession(testConfig(types.DifficultyEasy))

	_, err := controller.Next(context.Background(), session, "")
	require.NoError(t, err)
	_, err = controller.Next(context.Background(), session, "I like building APIs.")
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls)
	assert.Len(t, session.Turns, 5)
}

func TestController_EndRequestForcesEvaluation(t *testing.T) {
	client := &fakeClient{responses: []string{"Tell me about yourself.", validEvaluationJSON}}
	controller := NewController(client)
	session := types.NewSession(testConfig(types.DifficultyEasy))

	_, err := controller.Next(context.Background(), session, "")
	require.NoError(t, err)

	result, err := controller.Next(context.Background(), session, "I want to stop now.")
	require.NoError(t, err)

	require.NotNil(t, result.Evaluation)
	assert.Equal(t, "Interview finished! Here is your evaluation.", result.Question)
	assert.Equal(t, types.StateTerminated, session.State)

	// The forced prompt is the evaluation instruction, not another question.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "FinalEvaluation")
	assert.NotContains(t, client.prompts[1], "# SYSTEM INSTRUCTIONS")
}

func TestController_TurnBudgetForcesEvaluation(t *testing.T) {
	responses := make([]string, 0, 9)
	for i := 0; i < 8; i++ {
		responses = append(responses, fmt.Sprintf("Question %d?", i+1))
	}
	responses = append(responses, validEvaluationJSON)

	client := &fakeClient{responses: responses}
	controller := NewController(client)
	session := types.NewSession(testConfig(types.DifficultyEasy))

	_, err := controller.Next(context.Background(), session, "")
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		result, err := controller.Next(context.Background(), session, fmt.Sprintf("Answer %d.", i+1))
		require.NoError(t, err)
		require.Nil(t, result.Evaluation)
	}

	// Eight model turns recorded; the next call must demand the evaluation.
	require.Equal(t, 8, session.ModelTurnCount())

	result, err := controller.Next(context.Background(), session, "Here is my last answer.")
	require.NoError(t, err)
	require.NotNil(t, result.Evaluation)
	assert.Equal(t, types.StateTerminated, session.State)
}

func TestController_RejectsTerminatedSession(t *testing.T) {
	client := &fakeClient{responses: []string{"unused"}}
	controller := NewController(client)
	session := types.NewSession(testConfig(types.DifficultyEasy))
	session.State = types.StateTerminated

	_, err := controller.Next(context.Background(), session, "one more question please")
	require.Error(t, err)

	var ie *InputError
	assert.ErrorAs(t, err, &ie)
	assert.Zero(t, client.calls)
}

func TestController_APIFailureRollsBack(t *testing.T) {
	client := &fakeClient{responses: []string{"Tell me about yourself."}}
	controller := NewController(client)
	session := types.NewSession(testConfig(types.DifficultyEasy))

	_, err := controller.Next(context.Background(), session, "")
	require.NoError(t, err)
	turnsBefore := len(session.Turns)

	client.err = errors.New("upstream exploded")
	_, err = controller.Next(context.Background(), session, "An answer that will be lost.")
	require.Error(t, err)

	var ace *APICallError
	assert.ErrorAs(t, err, &ace)

	// History is untouched; the session can be resumed.
	assert.Len(t, session.Turns, turnsBefore)
	assert.Equal(t, types.StateInProgress, session.State)

	client.err = nil
	client.responses = []string{"Next question?"}
	result, err := controller.Next(context.Background(), session, "Trying again.")
	require.NoError(t, err)
	assert.Equal(t, "Next question?", result.Question)
}

func TestController_MalformedEvaluationRollsBack(t *testing.T) {
	broken := `{"FinalEvaluation": {"SoftSkillScore": "seven", "OverallFeedback": "ok"}, "QuestionPairs": []}`
	client := &fakeClient{responses: []string{"Tell me about yourself.", broken}}
	controller := NewController(client)
	session := types.NewSession(testConfig(types.DifficultyEasy))

	_, err := controller.Next(context.Background(), session, "")
	require.NoError(t, err)
	turnsBefore := len(session.Turns)

	_, err = controller.Next(context.Background(), session, "Please stop and evaluate me.")
	require.Error(t, err)

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	assert.Len(t, session.Turns, turnsBefore)
	assert.Equal(t, types.StateInProgress, session.State)
}

func TestController_MissingJobRoleRejected(t *testing.T) {
	client := &fakeClient{responses: []string{"unused"}}
	controller := NewController(client)
	config := testConfig(types.DifficultyEasy)
	config.JobRole = "  "
	session := types.NewSession(config)

	_, err := controller.Next(context.Background(), session, "")
	require.Error(t, err)

	var ie *InputError
	assert.ErrorAs(t, err, &ie)
	assert.Zero(t, client.calls)
}
