// Package analysis implements the resume flows: extracting interview
// context from an uploaded PDF, ranking a resume against a target role,
// and the roast review.
package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/careerkit/career-compass/internal/llm"
	"github.com/careerkit/career-compass/internal/prompts"
	"github.com/careerkit/career-compass/internal/types"
)

// Fallbacks used when the model cannot find a field in the resume.
const (
	fallbackName       = "Candidate"
	fallbackJobRole    = "Software Engineer"
	fallbackFocusField = "Technology"
)

// DefaultCallTimeout bounds one attempt against the provider. Each retry
// attempt gets a fresh window.
const DefaultCallTimeout = 30 * time.Second

// Analyzer runs the resume flows against an LLM client. Uploads are not
// conversational, so every call goes through the retry wrapper: a 429 or
// 503 is retried with backoff before the failure surfaces.
type Analyzer struct {
	client  llm.Client
	timeout time.Duration
}

// NewAnalyzer creates an analyzer over an LLM client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client, timeout: DefaultCallTimeout}
}

// WithTimeout overrides the per-attempt timeout.
func (a *Analyzer) WithTimeout(timeout time.Duration) *Analyzer {
	a.timeout = timeout
	return a
}

// generateJSON runs one retried JSON-mode call with the analyzer timeout.
func (a *Analyzer) generateJSON(ctx context.Context, parts []llm.Part, tier llm.ModelTier) (string, error) {
	return llm.CallWithRetry(ctx, llm.DefaultMaxAttempts, func(ctx context.Context) (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return a.client.GenerateJSON(callCtx, parts, tier)
	})
}

// AnalyzeResume extracts candidate context from a PDF resume for use as
// interview configuration. Fields the model could not determine fall back
// to generic defaults rather than failing the upload.
func (a *Analyzer) AnalyzeResume(ctx context.Context, pdf []byte) (*types.ResumeAnalysis, error) {
	if len(pdf) == 0 {
		return nil, &InputError{Field: "resume", Message: "resume PDF is required"}
	}

	prompt, err := prompts.Get("analysis.json", "analyze-resume")
	if err != nil {
		return nil, err
	}

	raw, err := a.generateJSON(ctx, []llm.Part{llm.TextPart(prompt), llm.PDFPart(pdf)}, llm.TierFlash)
	if err != nil {
		return nil, &APICallError{Message: "resume analysis failed", Cause: err}
	}

	var result types.ResumeAnalysis
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &result); err != nil {
		return nil, &ParseError{Message: "failed to decode resume analysis", Cause: err}
	}

	if strings.TrimSpace(result.Name) == "" {
		result.Name = fallbackName
	}
	if strings.TrimSpace(result.JobRole) == "" {
		result.JobRole = fallbackJobRole
	}
	if strings.TrimSpace(result.FocusField) == "" {
		result.FocusField = fallbackFocusField
	}
	return &result, nil
}

// RankResume scores a PDF resume against a target role and field.
func (a *Analyzer) RankResume(ctx context.Context, pdf []byte, jobRole, field string) (*types.RankResult, error) {
	prompt, err := a.resumePrompt("rank-resume", pdf, jobRole, field)
	if err != nil {
		return nil, err
	}

	raw, err := a.generateJSON(ctx, []llm.Part{llm.TextPart(prompt), llm.PDFPart(pdf)}, llm.TierPro)
	if err != nil {
		return nil, &APICallError{Message: "resume ranking failed", Cause: err}
	}

	var result types.RankResult
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &result); err != nil {
		return nil, &ParseError{Message: "failed to decode rank result", Cause: err}
	}
	if result.MatchScore < 0 || result.MatchScore > 100 {
		return nil, &ParseError{Message: "match score out of range"}
	}
	return &result, nil
}

// RoastResume produces the roast review of a PDF resume.
func (a *Analyzer) RoastResume(ctx context.Context, pdf []byte, jobRole, field string) (*types.RoastResult, error) {
	prompt, err := a.resumePrompt("roast-resume", pdf, jobRole, field)
	if err != nil {
		return nil, err
	}

	raw, err := a.generateJSON(ctx, []llm.Part{llm.TextPart(prompt), llm.PDFPart(pdf)}, llm.TierFlash)
	if err != nil {
		return nil, &APICallError{Message: "resume roast failed", Cause: err}
	}

	var result types.RoastResult
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &result); err != nil {
		return nil, &ParseError{Message: "failed to decode roast result", Cause: err}
	}
	return &result, nil
}

// resumePrompt validates the shared rank/roast inputs and renders the
// named template.
func (a *Analyzer) resumePrompt(key string, pdf []byte, jobRole, field string) (string, error) {
	if len(pdf) == 0 {
		return "", &InputError{Field: "resume", Message: "resume PDF is required"}
	}
	if strings.TrimSpace(jobRole) == "" {
		return "", &InputError{Field: "job_role", Message: "job role is required"}
	}
	if strings.TrimSpace(field) == "" {
		return "", &InputError{Field: "field", Message: "field is required"}
	}

	template, err := prompts.Get("analysis.json", key)
	if err != nil {
		return "", err
	}
	return prompts.Format(template, map[string]string{
		"JobRole": jobRole,
		"Field":   field,
	}), nil
}
