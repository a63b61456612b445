package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the profile record stored for each user. The scoring
// aggregator derives the profile-completion metric from a fixed subset
// of these fields.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile,omitempty"`
	DOB       string    `json:"dob,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Age       int       `json:"age,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	College   string    `json:"college,omitempty"`
	Degree    string    `json:"degree,omitempty"`
	GradYear  int       `json:"grad_year,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	GitHub    string    `json:"github,omitempty"`
	Portfolio string    `json:"portfolio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
