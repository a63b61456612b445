package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerkit/career-compass/internal/types"
)

// SaveChatSession appends a new interview chat session and returns its id.
func (s *Store) SaveChatSession(ctx context.Context, userID uuid.UUID, session *types.Session) (uuid.UUID, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO chat_sessions (user_id, session)
		 VALUES ($1, $2)
		 RETURNING id`,
		userID, payload,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save chat session: %w", err)
	}
	return id, nil
}

// UpdateChatSession replaces the stored transcript for an in-progress
// session. Turns only ever grow; the caller passes the whole session back.
func (s *Store) UpdateChatSession(ctx context.Context, id uuid.UUID, session *types.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	result, err := s.pool.Exec(ctx,
		`UPDATE chat_sessions SET session = $2, updated_at = NOW() WHERE id = $1`,
		id, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to update chat session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat session not found: %s", id)
	}
	return nil
}

// GetChatSession retrieves a stored session by id, or nil when not found.
// The session must belong to the given user.
func (s *Store) GetChatSession(ctx context.Context, userID, id uuid.UUID) (*types.Session, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT session FROM chat_sessions WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	var session types.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// SaveResumeEvaluation appends a rank or roast result for a user.
func (s *Store) SaveResumeEvaluation(ctx context.Context, record *types.ResumeEvaluationRecord) (uuid.UUID, error) {
	var result []byte
	var err error
	switch record.Kind {
	case types.EvaluationKindRank:
		result, err = json.Marshal(record.Rank)
	case types.EvaluationKindRoast:
		result, err = json.Marshal(record.Roast)
	default:
		return uuid.Nil, fmt.Errorf("unknown evaluation kind: %s", record.Kind)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal evaluation: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO resume_evaluations (user_id, kind, job_role, result)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		record.UserID, record.Kind, record.JobRole, result,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume evaluation: %w", err)
	}
	return id, nil
}

// ListResumeEvaluations returns all resume evaluations for a user, newest
// first.
func (s *Store) ListResumeEvaluations(ctx context.Context, userID uuid.UUID) ([]types.ResumeEvaluationRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, kind, job_role, result, created_at
		 FROM resume_evaluations WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume evaluations: %w", err)
	}
	defer rows.Close()

	var records []types.ResumeEvaluationRecord
	for rows.Next() {
		var record types.ResumeEvaluationRecord
		var result []byte
		if err := rows.Scan(&record.ID, &record.UserID, &record.Kind, &record.JobRole, &result, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume evaluation: %w", err)
		}
		if err := decodeEvaluationResult(&record, result); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// LatestRankEvaluation returns the most recent rank-kind evaluation for a
// user, or nil when none exists. Used by the scoring aggregator.
func (s *Store) LatestRankEvaluation(ctx context.Context, userID uuid.UUID) (*types.ResumeEvaluationRecord, error) {
	var record types.ResumeEvaluationRecord
	var result []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, kind, job_role, result, created_at
		 FROM resume_evaluations
		 WHERE user_id = $1 AND kind = $2
		 ORDER BY created_at DESC LIMIT 1`,
		userID, types.EvaluationKindRank,
	).Scan(&record.ID, &record.UserID, &record.Kind, &record.JobRole, &result, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest rank evaluation: %w", err)
	}
	if err := decodeEvaluationResult(&record, result); err != nil {
		return nil, err
	}
	return &record, nil
}

func decodeEvaluationResult(record *types.ResumeEvaluationRecord, result []byte) error {
	switch record.Kind {
	case types.EvaluationKindRank:
		record.Rank = &types.RankResult{}
		if err := json.Unmarshal(result, record.Rank); err != nil {
			return fmt.Errorf("failed to unmarshal rank result: %w", err)
		}
	case types.EvaluationKindRoast:
		record.Roast = &types.RoastResult{}
		if err := json.Unmarshal(result, record.Roast); err != nil {
			return fmt.Errorf("failed to unmarshal roast result: %w", err)
		}
	}
	return nil
}

// SaveInterview appends a completed interview with its evaluation.
func (s *Store) SaveInterview(ctx context.Context, record *types.InterviewRecord) (uuid.UUID, error) {
	evaluation, err := json.Marshal(record.Evaluation)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal interview evaluation: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO interviews (user_id, job_role, difficulty, evaluation)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		record.UserID, record.JobRole, record.Difficulty, evaluation,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save interview: %w", err)
	}
	return id, nil
}

// ListInterviews returns all interviews for a user, newest first.
func (s *Store) ListInterviews(ctx context.Context, userID uuid.UUID) ([]types.InterviewRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, job_role, difficulty, evaluation, created_at
		 FROM interviews WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var records []types.InterviewRecord
	for rows.Next() {
		record, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// LatestInterview returns the most recent interview for a user, or nil
// when none exists. Used by the scoring aggregator.
func (s *Store) LatestInterview(ctx context.Context, userID uuid.UUID) (*types.InterviewRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, job_role, difficulty, evaluation, created_at
		 FROM interviews WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest interview: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanInterview(rows)
}

func scanInterview(rows pgx.Rows) (*types.InterviewRecord, error) {
	var record types.InterviewRecord
	var evaluation []byte
	if err := rows.Scan(&record.ID, &record.UserID, &record.JobRole, &record.Difficulty, &evaluation, &record.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan interview: %w", err)
	}
	if len(evaluation) > 0 && string(evaluation) != "null" {
		record.Evaluation = &types.Evaluation{}
		if err := json.Unmarshal(evaluation, record.Evaluation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal interview evaluation: %w", err)
		}
	}
	return &record, nil
}

// SaveSkillAssessment appends a skill self-assessment for a user.
func (s *Store) SaveSkillAssessment(ctx context.Context, record *types.SkillAssessmentRecord) (uuid.UUID, error) {
	scores, err := json.Marshal(record.Scores)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal scores: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO skill_assessments (user_id, chosen_role, scores)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		record.UserID, record.ChosenRole, scores,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save skill assessment: %w", err)
	}
	return id, nil
}

// ListSkillAssessments returns all skill assessments for a user, newest
// first.
func (s *Store) ListSkillAssessments(ctx context.Context, userID uuid.UUID) ([]types.SkillAssessmentRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, chosen_role, scores, created_at
		 FROM skill_assessments WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skill assessments: %w", err)
	}
	defer rows.Close()

	var records []types.SkillAssessmentRecord
	for rows.Next() {
		var record types.SkillAssessmentRecord
		var scores []byte
		if err := rows.Scan(&record.ID, &record.UserID, &record.ChosenRole, &scores, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill assessment: %w", err)
		}
		if err := json.Unmarshal(scores, &record.Scores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
