// Package interview implements the conversational mock-interview core:
// prompt assembly, the turn state machine, and evaluation extraction.
package interview

import (
	"fmt"
	"strings"

	"github.com/careerkit/career-compass/internal/prompts"
	"github.com/careerkit/career-compass/internal/types"
)

// InterviewerName is the interviewer persona substituted into every
// system instruction. A single fixed persona keeps sessions reproducible.
const InterviewerName = "Anya Verma"

// transcriptWindow bounds how many trailing turns are rendered into the
// prompt. Older turns fall out of the window; the system turn never
// appears in the transcript.
const transcriptWindow = 12

// noResumeText is substituted when the candidate supplied no resume.
const noResumeText = "No resume provided."

// systemPromptKeys maps difficulty to its instruction template key.
var systemPromptKeys = map[types.Difficulty]string{
	types.DifficultyEasy:         "system-easy",
	types.DifficultyIntermediate: "system-intermediate",
	types.DifficultyHard:         "system-hard",
}

// SystemInstruction renders the difficulty-specific system instruction
// for a session config.
func SystemInstruction(config types.InterviewConfig) (string, error) {
	key, ok := systemPromptKeys[config.Difficulty]
	if !ok {
		return "", &InputError{Field: "difficulty", Message: fmt.Sprintf("unknown difficulty %q", config.Difficulty)}
	}

	template, err := prompts.Get("interview.json", key)
	if err != nil {
		return "", err
	}

	resumeText := config.ResumeText
	if strings.TrimSpace(resumeText) == "" {
		resumeText = noResumeText
	}

	return prompts.Format(template, map[string]string{
		"InterviewerName": InterviewerName,
		"CandidateName":   config.CandidateName,
		"JobRole":         config.JobRole,
		"FocusCategory":   config.FocusCategory,
		"FocusField":      config.FocusField,
		"ResumeText":      resumeText,
	}), nil
}

// Transcript renders a human-readable transcript from at most the last
// transcriptWindow turns, excluding system turns. User turns render as
// "Candidate:", model turns as "Interviewer:".
func Transcript(turns []types.Turn) string {
	window := turns
	if len(window) > transcriptWindow {
		window = window[len(window)-transcriptWindow:]
	}

	var lines []string
	for _, turn := range window {
		switch turn.Role {
		case types.RoleUser:
			lines = append(lines, "Candidate: "+turn.Text)
		case types.RoleModel:
			lines = append(lines, "Interviewer: "+turn.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// Assemble builds the single prompt string for the next LLM call. When
// forceEvaluation is set, the prompt instructs the model to emit ONLY the
// terminal evaluation JSON, grounded strictly in the transcript; otherwise
// it asks for the single next question.
func Assemble(config types.InterviewConfig, turns []types.Turn, forceEvaluation bool) (string, error) {
	transcript := Transcript(turns)

	if forceEvaluation {
		template, err := prompts.Get("interview.json", "evaluation-instruction")
		if err != nil {
			return "", err
		}
		return prompts.Format(template, map[string]string{
			"JobRole":       config.JobRole,
			"FocusCategory": config.FocusCategory,
			"FocusField":    config.FocusField,
			"Transcript":    transcript,
		}), nil
	}

	instruction, err := SystemInstruction(config)
	if err != nil {
		return "", err
	}
	rules, err := prompts.Get("interview.json", "response-rules")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# SYSTEM INSTRUCTIONS\n")
	sb.WriteString(instruction)
	sb.WriteString("\n\n# CONVERSATION HISTORY (recent turns)\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\n")
	sb.WriteString(rules)
	return sb.String(), nil
}
