package advice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/careerkit/career-compass/internal/llm"
	"github.com/careerkit/career-compass/internal/types"
)

// fakeClient replays scripted responses and records the prompts it saw.
type fakeClient struct {
	responses []string
	errs      []error
	prompts   []string
	calls     int
}

func (f *fakeClient) next(prompt string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return f.responses[len(f.responses)-1], nil
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.next(prompt)
}

func (f *fakeClient) GenerateParts(_ context.Context, parts []llm.Part, _ llm.ModelTier) (string, error) {
	return f.next(parts[0].Text)
}

func (f *fakeClient) GenerateJSON(_ context.Context, parts []llm.Part, _ llm.ModelTier) (string, error) {
	return f.next(parts[0].Text)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func TestChat_IncludesProfileAndHistory(t *testing.T) {
	client := &fakeClient{responses: []string{"Focus on distributed systems roles."}}

	history := []types.AdviceMessage{
		{Role: types.AdviceRoleUser, Text: "What should I learn next?"},
		{Role: types.AdviceRoleBot, Text: "Tell me about your background first."},
	}
	reply, err := NewAdvisor(client).Chat(context.Background(),
		"I know Go and Postgres.", history, `{"skills": ["Go", "PostgreSQL"]}`)
	require.NoError(t, err)

	assert.Equal(t, "Focus on distributed systems roles.", reply)
	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, `{"skills": ["Go", "PostgreSQL"]}`)
	assert.Contains(t, prompt, "User: What should I learn next?")
	assert.Contains(t, prompt, "AI: Tell me about your background first.")
	assert.Contains(t, prompt, "User: I know Go and Postgres.")
}

func TestChat_NoProfileFallsBackToGeneric(t *testing.T) {
	client := &fakeClient{responses: []string{"Here is some general advice."}}

	_, err := NewAdvisor(client).Chat(context.Background(), "Where do I start?", nil, "  ")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "No profile data provided.")
}

func TestChat_EmptyQuestionRejected(t *testing.T) {
	client := &fakeClient{responses: []string{"unused"}}

	_, err := NewAdvisor(client).Chat(context.Background(), "   ", nil, "")

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 0, client.calls)
}

func TestChat_ProviderErrorWrapped(t *testing.T) {
	client := &fakeClient{errs: []error{&googleapi.Error{Code: 400, Message: "bad request"}}}

	_, err := NewAdvisor(client).Chat(context.Background(), "Help me.", nil, "")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1, client.calls)
}

func TestSuggestCareerPaths_ParsesResponse(t *testing.T) {
	client := &fakeClient{responses: []string{`[
		{"title": "Site Reliability Engineer", "reason": "Strong Go and infra skills.", "next": ["Kubernetes", "Terraform"]},
		{"title": "Backend Engineer", "reason": "API and database experience.", "next": ["gRPC"]},
		{"title": "Platform Engineer", "reason": "Tooling background.", "next": ["Bazel"]}
	]`}}

	paths, err := NewAdvisor(client).SuggestCareerPaths(context.Background(), "Go, PostgreSQL, CI pipelines")
	require.NoError(t, err)

	require.Len(t, paths, 3)
	assert.Equal(t, "Site Reliability Engineer", paths[0].Title)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, paths[0].Next)
	assert.Contains(t, client.prompts[0], "Go, PostgreSQL, CI pipelines")
}

func TestSuggestCareerPaths_EmptyResumeRejected(t *testing.T) {
	client := &fakeClient{responses: []string{"unused"}}

	_, err := NewAdvisor(client).SuggestCareerPaths(context.Background(), "")

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 0, client.calls)
}

func TestSuggestCareerPaths_GarbageIsParseError(t *testing.T) {
	client := &fakeClient{responses: []string{"these are words, not JSON"}}

	_, err := NewAdvisor(client).SuggestCareerPaths(context.Background(), "Go")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestSuggestCareerPaths_EmptyListIsParseError(t *testing.T) {
	client := &fakeClient{responses: []string{"[]"}}

	_, err := NewAdvisor(client).SuggestCareerPaths(context.Background(), "Go")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestSuggestCareerPaths_RetriesOnOverload(t *testing.T) {
	client := &fakeClient{
		errs: []error{&googleapi.Error{Code: 503, Message: "overloaded"}},
		responses: []string{"",
			`[{"title": "Backend Engineer", "reason": "fits", "next": ["gRPC"]}]`},
	}

	paths, err := NewAdvisor(client).SuggestCareerPaths(context.Background(), "Go")
	require.NoError(t, err)

	assert.Len(t, paths, 1)
	assert.Equal(t, 2, client.calls)
}
