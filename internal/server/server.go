package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/careerkit/career-compass/internal/advice"
	"github.com/careerkit/career-compass/internal/analysis"
	"github.com/careerkit/career-compass/internal/config"
	"github.com/careerkit/career-compass/internal/interview"
	"github.com/careerkit/career-compass/internal/llm"
	"github.com/careerkit/career-compass/internal/news"
	"github.com/careerkit/career-compass/internal/server/middleware"
	"github.com/careerkit/career-compass/internal/speech"
	"github.com/careerkit/career-compass/internal/store"
	"github.com/careerkit/career-compass/internal/trends"
	"github.com/careerkit/career-compass/internal/types"
)

// Store is the persistence surface the handlers need. *store.Store
// satisfies it; tests substitute a fake.
type Store interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (*types.UserProfile, error)
	GetCredentials(ctx context.Context, email string) (uuid.UUID, string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *types.UserProfile) error
	SaveChatSession(ctx context.Context, userID uuid.UUID, session *types.Session) (uuid.UUID, error)
	UpdateChatSession(ctx context.Context, id uuid.UUID, session *types.Session) error
	GetChatSession(ctx context.Context, userID, id uuid.UUID) (*types.Session, error)
	SaveResumeEvaluation(ctx context.Context, record *types.ResumeEvaluationRecord) (uuid.UUID, error)
	ListResumeEvaluations(ctx context.Context, userID uuid.UUID) ([]types.ResumeEvaluationRecord, error)
	LatestRankEvaluation(ctx context.Context, userID uuid.UUID) (*types.ResumeEvaluationRecord, error)
	SaveInterview(ctx context.Context, record *types.InterviewRecord) (uuid.UUID, error)
	ListInterviews(ctx context.Context, userID uuid.UUID) ([]types.InterviewRecord, error)
	LatestInterview(ctx context.Context, userID uuid.UUID) (*types.InterviewRecord, error)
	SaveSkillAssessment(ctx context.Context, record *types.SkillAssessmentRecord) (uuid.UUID, error)
	ListSkillAssessments(ctx context.Context, userID uuid.UUID) ([]types.SkillAssessmentRecord, error)
}

// TrendsProvider is the job-trend surface used by the trends endpoint.
type TrendsProvider interface {
	TopCategories(ctx context.Context, limit int) ([]trends.CategoryCount, error)
}

// NewsProvider is the career-news surface used by the news endpoint.
type NewsProvider interface {
	CareerNews(ctx context.Context, max int) ([]news.Article, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	llmClient   llm.Client
	controller  *interview.Controller
	analyzer    *analysis.Analyzer
	advisor     *advice.Advisor
	trends      TrendsProvider
	news        NewsProvider
	synthesizer speech.Synthesizer
	jwtService  *JWTService
	passwords   *config.PasswordConfig
	trendsLimit int
}

// New creates a server with all production collaborators wired in.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	database, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	s := &Server{
		store:       database,
		llmClient:   llmClient,
		controller:  interview.NewController(llmClient),
		analyzer:    analysis.NewAnalyzer(llmClient),
		advisor:     advice.NewAdvisor(llmClient),
		trends:      trends.NewClient(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry),
		news:        news.NewClient(cfg.GNewsAPIKey),
		synthesizer: speech.NewClient(cfg.TTSAPIKey),
		jwtService:  NewJWTService(jwtConfig),
		passwords:   passwordConfig,
		trendsLimit: cfg.TrendsLimit,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // interview turns wait on the LLM
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Interview, resume, score, speech, and
// profile routes require a bearer token; auth, trends, news, and health
// do not.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /trends", s.handleTrends)
	mux.HandleFunc("GET /news", s.handleNews)

	protected := http.NewServeMux()
	protected.HandleFunc("POST /interview/turn", s.handleInterviewTurn)
	protected.HandleFunc("GET /interviews", s.handleListInterviews)
	protected.HandleFunc("POST /resume/analyze", s.handleAnalyzeResume)
	protected.HandleFunc("POST /resume/rank", s.handleRankResume)
	protected.HandleFunc("POST /resume/roast", s.handleRoastResume)
	protected.HandleFunc("GET /resume/evaluations", s.handleListResumeEvaluations)
	protected.HandleFunc("GET /scores", s.handleScores)
	protected.HandleFunc("POST /advice/chat", s.handleCareerAdvice)
	protected.HandleFunc("POST /advice/career-paths", s.handleCareerPaths)
	protected.HandleFunc("POST /speak", s.handleSpeak)
	protected.HandleFunc("GET /profile", s.handleGetProfile)
	protected.HandleFunc("PUT /profile", s.handleUpdateProfile)
	protected.HandleFunc("POST /skills/assessments", s.handleSaveSkillAssessment)
	protected.HandleFunc("GET /skills/assessments", s.handleListSkillAssessments)

	mux.Handle("/", middleware.Auth(s.jwtService.AsTokenValidator())(protected))
	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if closer, ok := s.store.(interface{ Close() }); ok {
		closer.Close()
	}
	_ = s.llmClient.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// domainError maps a domain error and writes the JSON error envelope.
func (s *Server) domainError(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	s.errorResponse(w, status, message)
}
