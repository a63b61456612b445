package types

import (
	"time"

	"github.com/google/uuid"
)

// CompositeScore holds the normalized readiness/fit metrics derived from
// a user's stored evaluation records. Each value is in 0-100.
type CompositeScore struct {
	ProfileCompletion int `json:"profile_completion"`
	SkillReadiness    int `json:"skill_readiness"`
	CareerFit         int `json:"career_fit"`
}

// ResumeEvaluationRecord is a stored resume rank/roast result.
type ResumeEvaluationRecord struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	Kind      ResumeEvaluationKind `json:"kind"`
	JobRole   string               `json:"job_role"`
	Rank      *RankResult          `json:"rank,omitempty"`
	Roast     *RoastResult         `json:"roast,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// InterviewRecord is a stored completed (or abandoned) interview.
type InterviewRecord struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	JobRole    string          `json:"job_role"`
	Difficulty Difficulty      `json:"difficulty"`
	Evaluation *Evaluation     `json:"evaluation,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SkillAssessmentRecord is a stored self-assessment with a chosen role
// and per-skill scores.
type SkillAssessmentRecord struct {
	ID         uuid.UUID          `json:"id"`
	UserID     uuid.UUID          `json:"user_id"`
	ChosenRole string             `json:"chosen_role"`
	Scores     map[string]float64 `json:"scores"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ScoreInputs collects the most recent evaluation records used by the
// scoring aggregator. Any field may be nil when the user has no record
// of that kind.
type ScoreInputs struct {
	Profile   *UserProfile
	Resume    *ResumeEvaluationRecord
	Interview *InterviewRecord
}
