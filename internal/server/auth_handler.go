package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/careerkit/career-compass/internal/types"
)

// LoginResponse is returned by both register and login.
type LoginResponse struct {
	User  *types.UserProfile `json:"user"`
	Token string             `json:"token"`
}

// handleRegister creates a user and returns a fresh token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.domainError(w, err)
		return
	}

	// Reject duplicate emails before hashing; the unique index is the
	// real guard against races.
	existingID, _, err := s.store.GetCredentials(r.Context(), req.Email)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if existingID != uuid.Nil {
		s.domainError(w, &ErrEmailAlreadyExists{Email: req.Email})
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		s.domainError(w, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Email, req.Name, hash)
	if err != nil {
		s.domainError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusCreated, LoginResponse{User: user, Token: token})
}

// handleLogin verifies credentials and returns a token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.domainError(w, err)
		return
	}

	userID, hash, err := s.store.GetCredentials(r.Context(), req.Email)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if userID == uuid.Nil || !s.passwords.VerifyPassword(req.Password, hash) {
		s.domainError(w, &ErrInvalidCredentials{})
		return
	}

	user, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, LoginResponse{User: user, Token: token})
}
