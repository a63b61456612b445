// Package types provides type definitions for structured data used throughout the career-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/google/uuid"
)

// Role identifies the author of a transcript turn.
type Role string

// Role constants define the three turn authors
const (
	// RoleSystem is the hidden instruction turn seeded at session start
	RoleSystem Role = "system"
	// RoleUser is a candidate utterance
	RoleUser Role = "user"
	// RoleModel is an interviewer (LLM) utterance
	RoleModel Role = "model"
)

// Turn is a single transcript entry. Turns are immutable once appended
// and their insertion order is significant.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// SystemTurn creates a system-role turn.
func SystemTurn(text string) Turn { return Turn{Role: RoleSystem, Text: text} }

// UserTurn creates a user-role turn.
func UserTurn(text string) Turn { return Turn{Role: RoleUser, Text: text} }

// ModelTurn creates a model-role turn.
func ModelTurn(text string) Turn { return Turn{Role: RoleModel, Text: text} }

// Difficulty selects the interview question-count target and instruction template.
type Difficulty string

// Supported difficulty levels
const (
	DifficultyEasy         Difficulty = "easy"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyHard         Difficulty = "hard"
)

// Valid reports whether d is one of the supported difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyIntermediate, DifficultyHard:
		return true
	}
	return false
}

// InterviewConfig holds the immutable per-session interview parameters.
type InterviewConfig struct {
	CandidateName string     `json:"candidate_name"`
	JobRole       string     `json:"job_role"`
	FocusCategory string     `json:"focus_category"`
	FocusField    string     `json:"focus_field"`
	Difficulty    Difficulty `json:"difficulty"`
	ResumeText    string     `json:"resume_text,omitempty"`
}

// SessionState tracks where an interview session is in its lifecycle.
type SessionState string

// Session lifecycle states
const (
	StateAwaitingFirstQuestion SessionState = "awaiting_first_question"
	StateInProgress            SessionState = "in_progress"
	StateTerminated            SessionState = "terminated"
)

// Session is the full interview transcript plus its immutable config.
// The session is exclusively owned by its caller; callers must serialize
// concurrent access per session id themselves.
type Session struct {
	Turns  []Turn          `json:"turns"`
	Config InterviewConfig `json:"config"`
	State  SessionState    `json:"state"`
}

// NewSession creates an empty session awaiting its first turn.
func NewSession(config InterviewConfig) *Session {
	return &Session{Config: config, State: StateAwaitingFirstQuestion}
}

// ModelTurnCount returns the number of model-role turns in the transcript.
func (s *Session) ModelTurnCount() int {
	count := 0
	for _, turn := range s.Turns {
		if turn.Role == RoleModel {
			count++
		}
	}
	return count
}

// Append adds a turn to the transcript. Append-only: existing turns are
// never modified or removed.
func (s *Session) Append(turn Turn) {
	s.Turns = append(s.Turns, turn)
}

// FeedbackItem is one per-metric judgement inside a question evaluation.
type FeedbackItem struct {
	Metric     string `json:"Metric"`
	Evaluation string `json:"Evaluation"`
	Score      string `json:"Score"`
}

// QuestionPair is the evaluation of a single question/answer exchange.
// Score strings use the "X/Y" form, e.g. "8/10".
type QuestionPair struct {
	QuestionNumber              string         `json:"QuestionNumber"`
	Question                    string         `json:"Question"`
	FinalScore                  string         `json:"FinalScore"`
	Feedback                    []FeedbackItem `json:"Feedback"`
	PotentialAreasOfImprovement string         `json:"PotentialAreasOfImprovement"`
	IdealAnswer                 string         `json:"IdealAnswer"`
}

// FinalEvaluation is the interview-wide summary judgement.
type FinalEvaluation struct {
	SoftSkillScore  string `json:"SoftSkillScore"`
	OverallFeedback string `json:"OverallFeedback"`
}

// Evaluation is the terminal structured output of an interview session.
// Field names on the wire are PascalCase because that is what the model
// is instructed to emit.
type Evaluation struct {
	FinalEvaluation FinalEvaluation `json:"FinalEvaluation"`
	QuestionPairs   []QuestionPair  `json:"QuestionPairs"`
}

// TurnResult is what the interview controller returns for one invocation.
// Evaluation is nil until the session terminates. SessionID identifies the
// stored transcript and is filled in by the HTTP layer, not the controller.
type TurnResult struct {
	SessionID  uuid.UUID   `json:"session_id"`
	Question   string      `json:"question"`
	Session    *Session    `json:"session"`
	Evaluation *Evaluation `json:"evaluation,omitempty"`
}
