package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careerkit/career-compass/internal/types"
)

// Registration only fills email, name and the password hash; every other
// profile column stays NULL until the user edits their profile, so reads
// coalesce to the zero value.
const profileColumns = `id, email, name,
	COALESCE(mobile, ''), COALESCE(dob, ''), COALESCE(gender, ''),
	COALESCE(age, 0), COALESCE(city, ''), COALESCE(state, ''),
	COALESCE(country, ''), COALESCE(postal_code, ''), COALESCE(college, ''),
	COALESCE(degree, ''), COALESCE(grad_year, 0), COALESCE(skills, '[]'::jsonb),
	COALESCE(experience, ''), COALESCE(linkedin, ''), COALESCE(github, ''),
	COALESCE(portfolio, ''), created_at, updated_at`

// CreateUser inserts a new user with a pre-hashed password and returns
// the stored profile.
func (s *Store) CreateUser(ctx context.Context, email, name, passwordHash string) (*types.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var profile types.UserProfile
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, name, created_at, updated_at`,
		email, name, passwordHash,
	).Scan(&profile.ID, &profile.Email, &profile.Name, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &profile, nil
}

// GetCredentials returns the user id and stored password hash for an
// email, or (Nil, "", nil) when the user does not exist.
func (s *Store) GetCredentials(ctx context.Context, email string) (uuid.UUID, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var id uuid.UUID
	var hash string
	err := s.pool.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE email = $1`,
		email,
	).Scan(&id, &hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return uuid.Nil, "", nil
		}
		return uuid.Nil, "", fmt.Errorf("failed to get credentials: %w", err)
	}
	return id, hash, nil
}

// GetProfile retrieves a user profile by id, or nil when not found.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	var profile types.UserProfile
	err := s.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM users WHERE id = $1`,
		userID,
	).Scan(
		&profile.ID, &profile.Email, &profile.Name, &profile.Mobile, &profile.DOB,
		&profile.Gender, &profile.Age, &profile.City, &profile.State, &profile.Country,
		&profile.PostalCode, &profile.College, &profile.Degree, &profile.GradYear,
		&profile.Skills, &profile.Experience, &profile.LinkedIn, &profile.GitHub,
		&profile.Portfolio, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile overwrites the editable profile fields for a user.
func (s *Store) UpdateProfile(ctx context.Context, profile *types.UserProfile) error {
	result, err := s.pool.Exec(ctx,
		`UPDATE users SET
			name = $2, mobile = $3, dob = $4, gender = $5, age = $6,
			city = $7, state = $8, country = $9, postal_code = $10,
			college = $11, degree = $12, grad_year = $13, skills = $14,
			experience = $15, linkedin = $16, github = $17, portfolio = $18,
			updated_at = NOW()
		 WHERE id = $1`,
		profile.ID, profile.Name, profile.Mobile, profile.DOB, profile.Gender,
		profile.Age, profile.City, profile.State, profile.Country, profile.PostalCode,
		profile.College, profile.Degree, profile.GradYear, profile.Skills,
		profile.Experience, profile.LinkedIn, profile.GitHub, profile.Portfolio,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", profile.ID)
	}
	return nil
}
