package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// InterviewTurnRequest is the request body for one interview turn.
// History is empty on the first call; subsequent calls either echo back
// the session returned by the previous turn or name its stored id.
type InterviewTurnRequest struct {
	SessionID     *uuid.UUID `json:"session_id,omitempty"`
	CandidateName string     `json:"candidate_name" validate:"required,min=1"`
	JobRole       string     `json:"job_role" validate:"required,min=1"`
	FocusCategory string     `json:"focus_category"`
	FocusField    string     `json:"focus_field" validate:"required,min=1"`
	Difficulty    Difficulty `json:"difficulty" validate:"required,oneof=easy intermediate hard"`
	ResumeText    string     `json:"resume_text"`
	Session       *Session   `json:"session,omitempty"`
	UserResponse  string     `json:"user_response"`
}

// ResumeEvaluationRequest is the request body for the rank and roast flows.
type ResumeEvaluationRequest struct {
	PDFBase64 string `json:"pdf_base64" validate:"required"`
	JobRole   string `json:"job_role" validate:"required,min=1"`
	Field     string `json:"field" validate:"required,min=1"`
}

// RegisterRequest creates a new user with password authentication.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SpeakRequest is the text-to-speech request body.
type SpeakRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// CareerAdviceRequest asks the advice chatbot one question, carrying the
// conversation so far. The user's stored profile is attached server-side.
type CareerAdviceRequest struct {
	UserInput string          `json:"user_input" validate:"required,min=1"`
	History   []AdviceMessage `json:"history"`
}

// CareerPathsRequest asks for career path suggestions from resume text.
type CareerPathsRequest struct {
	ResumeText string `json:"resume_text" validate:"required,min=1"`
}

// Validate validates the InterviewTurnRequest using the validator.
func (r *InterviewTurnRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ResumeEvaluationRequest using the validator.
func (r *ResumeEvaluationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SpeakRequest using the validator.
func (r *SpeakRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CareerAdviceRequest using the validator.
func (r *CareerAdviceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CareerPathsRequest using the validator.
func (r *CareerPathsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
