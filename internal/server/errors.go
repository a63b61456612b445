package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"google.golang.org/api/googleapi"

	"github.com/careerkit/career-compass/internal/advice"
	"github.com/careerkit/career-compass/internal/analysis"
	"github.com/careerkit/career-compass/internal/interview"
	"github.com/careerkit/career-compass/internal/llm"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// User-facing messages for the two LLM failure classes. Transient
// provider errors are retryable by the user; a malformed terminal
// evaluation means the turn was lost but the session survives.
const (
	msgServiceBusy        = "service busy, please try again"
	msgEvaluationFailed   = "could not finalize evaluation, please try ending again"
	msgInternalError      = "internal error"
	msgInvalidRequestBody = "invalid request body"
)

// mapError translates a domain error into an HTTP status and a
// user-facing message.
func mapError(err error) (int, string) {
	var interviewInput *interview.InputError
	var analysisInput *analysis.InputError
	var adviceInput *advice.InputError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &interviewInput) || errors.As(err, &analysisInput) ||
		errors.As(err, &adviceInput) || errors.As(err, &validationErrors) {
		return http.StatusBadRequest, err.Error()
	}

	var emailExists *ErrEmailAlreadyExists
	if errors.As(err, &emailExists) {
		return http.StatusConflict, err.Error()
	}
	var badCredentials *ErrInvalidCredentials
	if errors.As(err, &badCredentials) {
		return http.StatusUnauthorized, err.Error()
	}

	// Transient provider errors surface as retryable.
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && llm.RetryableStatus(apiErr.Code) {
		return http.StatusServiceUnavailable, msgServiceBusy
	}

	// The model attempted a terminal evaluation and got it wrong; the
	// turn is lost but the session history is intact.
	var evaluationErr *interview.ValidationError
	if errors.As(err, &evaluationErr) {
		return http.StatusBadGateway, msgEvaluationFailed
	}

	var interviewAPI *interview.APICallError
	var analysisAPI *analysis.APICallError
	var analysisParse *analysis.ParseError
	var adviceAPI *advice.APICallError
	var adviceParse *advice.ParseError
	if errors.As(err, &interviewAPI) || errors.As(err, &analysisAPI) ||
		errors.As(err, &analysisParse) || errors.As(err, &adviceAPI) ||
		errors.As(err, &adviceParse) {
		return http.StatusBadGateway, err.Error()
	}

	return http.StatusInternalServerError, msgInternalError
}
