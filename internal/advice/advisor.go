// Package advice implements the career guidance flows: the profile-aware
// advice chatbot and career path suggestions from resume text.
package advice

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/careerkit/career-compass/internal/llm"
	"github.com/careerkit/career-compass/internal/prompts"
	"github.com/careerkit/career-compass/internal/types"
)

// noProfileFallback stands in for the profile block when the user has no
// stored profile data, steering the model toward generic advice.
const noProfileFallback = "No profile data provided. Provide generic advice and encourage the user to use the personalized feature if they have a profile."

// DefaultCallTimeout bounds one attempt against the provider. Each retry
// attempt gets a fresh window.
const DefaultCallTimeout = 30 * time.Second

// Advisor runs the guidance flows against an LLM client. Like the resume
// flows these are one-shot calls, so transient provider errors are
// retried with backoff before failing.
type Advisor struct {
	client  llm.Client
	timeout time.Duration
}

// NewAdvisor creates an advisor over an LLM client.
func NewAdvisor(client llm.Client) *Advisor {
	return &Advisor{client: client, timeout: DefaultCallTimeout}
}

// WithTimeout overrides the per-attempt timeout.
func (a *Advisor) WithTimeout(timeout time.Duration) *Advisor {
	a.timeout = timeout
	return a
}

// Chat answers one career question in the context of the conversation so
// far and the user's profile JSON. An empty profileJSON produces generic
// advice rather than an error.
func (a *Advisor) Chat(ctx context.Context, userInput string, history []types.AdviceMessage, profileJSON string) (string, error) {
	if strings.TrimSpace(userInput) == "" {
		return "", &InputError{Field: "user_input", Message: "a question is required"}
	}

	template, err := prompts.Get("advice.json", "career-advice")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(profileJSON) == "" {
		profileJSON = noProfileFallback
	}
	system := prompts.Format(template, map[string]string{"ProfileJSON": profileJSON})

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\nHere is the conversation history:\n")
	for _, message := range history {
		if message.Role == types.AdviceRoleUser {
			sb.WriteString("User: ")
		} else {
			sb.WriteString("AI: ")
		}
		sb.WriteString(message.Text)
		sb.WriteString("\n")
	}
	sb.WriteString("\nUser: ")
	sb.WriteString(userInput)
	sb.WriteString("\nAI:")

	reply, err := llm.CallWithRetry(ctx, llm.DefaultMaxAttempts, func(ctx context.Context) (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return a.client.GenerateContent(callCtx, sb.String(), llm.TierFlash)
	})
	if err != nil {
		return "", &APICallError{Message: "career advice failed", Cause: err}
	}
	return strings.TrimSpace(reply), nil
}

// SuggestCareerPaths derives suggested career directions from resume
// text, each with a rationale and the skills to learn next.
func (a *Advisor) SuggestCareerPaths(ctx context.Context, resumeText string) ([]types.CareerPath, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InputError{Field: "resume_text", Message: "resume text is required"}
	}

	template, err := prompts.Get("advice.json", "suggest-career-paths")
	if err != nil {
		return nil, err
	}
	prompt := prompts.Format(template, map[string]string{"ResumeText": resumeText})

	raw, err := llm.CallWithRetry(ctx, llm.DefaultMaxAttempts, func(ctx context.Context) (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return a.client.GenerateJSON(callCtx, []llm.Part{llm.TextPart(prompt)}, llm.TierFlash)
	})
	if err != nil {
		return nil, &APICallError{Message: "career path suggestion failed", Cause: err}
	}

	var paths []types.CareerPath
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &paths); err != nil {
		return nil, &ParseError{Message: "failed to decode career paths", Cause: err}
	}
	if len(paths) == 0 {
		return nil, &ParseError{Message: "no career paths in response"}
	}
	return paths, nil
}
