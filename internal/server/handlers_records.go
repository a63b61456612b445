package server

import (
	"encoding/json"
	"net/http"

	"github.com/careerkit/career-compass/internal/scoring"
	"github.com/careerkit/career-compass/internal/server/middleware"
	"github.com/careerkit/career-compass/internal/types"
)

// handleTrends returns the trending job-category histogram.
func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	counts, err := s.trends.TopCategories(r.Context(), s.trendsLimit)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "job trends unavailable")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"trends": counts})
}

// handleNews returns career-related headlines.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	articles, err := s.news.CareerNews(r.Context(), 10)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "career news unavailable")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"articles": articles})
}

// handleScores aggregates the composite score from the user's most
// recent records.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	resume, err := s.store.LatestRankEvaluation(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	latestInterview, err := s.store.LatestInterview(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}

	composite := scoring.Aggregate(types.ScoreInputs{
		Profile:   profile,
		Resume:    resume,
		Interview: latestInterview,
	})
	s.jsonResponse(w, http.StatusOK, composite)
}

// handleGetProfile returns the authenticated user's profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateProfile overwrites the authenticated user's profile fields.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var profile types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}
	profile.ID = userID

	if err := s.store.UpdateProfile(r.Context(), &profile); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

// handleListInterviews returns the user's interviews, newest first.
func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := s.store.ListInterviews(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"interviews": records})
}

// handleListResumeEvaluations returns the user's rank and roast history,
// newest first.
func (s *Server) handleListResumeEvaluations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := s.store.ListResumeEvaluations(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"evaluations": records})
}

// handleSaveSkillAssessment appends a skill self-assessment.
func (s *Server) handleSaveSkillAssessment(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var record types.SkillAssessmentRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}
	if record.ChosenRole == "" || len(record.Scores) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "chosen_role and scores are required")
		return
	}
	record.UserID = userID

	id, err := s.store.SaveSkillAssessment(r.Context(), &record)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": id})
}

// handleListSkillAssessments returns the user's skill assessments,
// newest first.
func (s *Server) handleListSkillAssessments(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := s.store.ListSkillAssessments(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"assessments": records})
}
