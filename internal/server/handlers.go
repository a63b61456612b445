package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/careerkit/career-compass/internal/server/middleware"
	"github.com/careerkit/career-compass/internal/types"
)

// handleInterviewTurn advances an interview session by one turn. The
// transcript is stored server-side; a client may resume by session_id,
// echo the session back itself, or start fresh. When the turn terminates
// the interview, the evaluation is persisted before responding.
func (s *Server) handleInterviewTurn(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.InterviewTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.domainError(w, err)
		return
	}

	session := req.Session
	fresh := false
	if req.SessionID != nil {
		session, err = s.store.GetChatSession(r.Context(), userID, *req.SessionID)
		if err != nil {
			s.domainError(w, err)
			return
		}
		if session == nil {
			s.errorResponse(w, http.StatusNotFound, "interview session not found")
			return
		}
	}
	if session == nil {
		fresh = true
		session = types.NewSession(types.InterviewConfig{
			CandidateName: req.CandidateName,
			JobRole:       req.JobRole,
			FocusCategory: req.FocusCategory,
			FocusField:    req.FocusField,
			Difficulty:    req.Difficulty,
			ResumeText:    req.ResumeText,
		})
	}

	result, err := s.controller.Next(r.Context(), session, req.UserResponse)
	if err != nil {
		s.domainError(w, err)
		return
	}

	// Persist the transcript only for server-managed sessions. A client
	// echoing the session inline keeps custody of it.
	switch {
	case req.SessionID != nil:
		result.SessionID = *req.SessionID
		if err := s.store.UpdateChatSession(r.Context(), result.SessionID, session); err != nil {
			s.domainError(w, err)
			return
		}
	case fresh:
		id, err := s.store.SaveChatSession(r.Context(), userID, session)
		if err != nil {
			s.domainError(w, err)
			return
		}
		result.SessionID = id
	}

	if result.Evaluation != nil {
		record := &types.InterviewRecord{
			UserID:     userID,
			JobRole:    session.Config.JobRole,
			Difficulty: session.Config.Difficulty,
			Evaluation: result.Evaluation,
		}
		if _, err := s.store.SaveInterview(r.Context(), record); err != nil {
			s.domainError(w, err)
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeResume extracts interview context from an uploaded PDF.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PDFBase64 string `json:"pdf_base64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	pdf, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "pdf_base64 is not valid base64")
		return
	}

	result, err := s.analyzer.AnalyzeResume(r.Context(), pdf)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRankResume scores a resume against a role and stores the result.
func (s *Server) handleRankResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	req, pdf, ok := s.decodeResumeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.analyzer.RankResume(r.Context(), pdf, req.JobRole, req.Field)
	if err != nil {
		s.domainError(w, err)
		return
	}

	record := &types.ResumeEvaluationRecord{
		UserID:  userID,
		Kind:    types.EvaluationKindRank,
		JobRole: req.JobRole,
		Rank:    result,
	}
	if _, err := s.store.SaveResumeEvaluation(r.Context(), record); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRoastResume roasts a resume and stores the result.
func (s *Server) handleRoastResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	req, pdf, ok := s.decodeResumeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.analyzer.RoastResume(r.Context(), pdf, req.JobRole, req.Field)
	if err != nil {
		s.domainError(w, err)
		return
	}

	record := &types.ResumeEvaluationRecord{
		UserID:  userID,
		Kind:    types.EvaluationKindRoast,
		JobRole: req.JobRole,
		Roast:   result,
	}
	if _, err := s.store.SaveResumeEvaluation(r.Context(), record); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// decodeResumeRequest decodes and validates the shared rank/roast body.
func (s *Server) decodeResumeRequest(w http.ResponseWriter, r *http.Request) (*types.ResumeEvaluationRequest, []byte, bool) {
	var req types.ResumeEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return nil, nil, false
	}
	if err := req.Validate(); err != nil {
		s.domainError(w, err)
		return nil, nil, false
	}

	pdf, err := base64.StdEncoding.DecodeString(req.PDFBase64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "pdf_base64 is not valid base64")
		return nil, nil, false
	}
	return &req, pdf, true
}

// handleCareerAdvice answers one advice chat question. The stored
// profile is attached to the prompt so the advice is personalized; users
// without profile data get generic guidance.
func (s *Server) handleCareerAdvice(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.CareerAdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.domainError(w, err)
		return
	}

	var profileJSON string
	if profile, err := s.store.GetProfile(r.Context(), userID); err != nil {
		s.domainError(w, err)
		return
	} else if profile != nil {
		raw, err := json.Marshal(profile)
		if err != nil {
			s.domainError(w, err)
			return
		}
		profileJSON = string(raw)
	}

	reply, err := s.advisor.Chat(r.Context(), req.UserInput, req.History, profileJSON)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"advice": reply})
}

// handleCareerPaths suggests career directions from resume text.
func (s *Server) handleCareerPaths(w http.ResponseWriter, r *http.Request) {
	var req types.CareerPathsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.domainError(w, err)
		return
	}

	paths, err := s.advisor.SuggestCareerPaths(r.Context(), req.ResumeText)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"career_paths": paths})
}

// handleSpeak converts text into base64 MP3 audio.
func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var req types.SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}
	if err := req.Validate(); err != nil {
		s.domainError(w, err)
		return
	}

	audio, err := s.synthesizer.Synthesize(r.Context(), req.Text)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "text-to-speech failed")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"audio_base64": audio})
}
