package server

import (
	"campusworks/internal/advisory"
	"campusworks/internal/config"
	campusworksErrors "campusworks/internal/errors"
	"campusworks/internal/observability"
	"campusworks/internal/store"
	"campusworks/internal/workflow"
)

// Request bodies for the API endpoints.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SubmitApplicationRequest struct {
	JobID       string `json:"jobId"`
	StudentID   string `json:"studentId"`
	CoverLetter string `json:"coverLetter"`
}

type DecisionRequest struct {
	Outcome string `json:"outcome"`
}

type RoadmapRequest struct {
	Goal string `json:"goal"`
}

type QuizRequest struct {
	Topic string `json:"topic"`
}

type RemediationRequest struct {
	Topic string `json:"topic"`
}

type RiskRequest struct {
	Skills string `json:"skills"`
}

type FitRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"jobDescription"`
}

type ExplainRequest struct {
	Concept string `json:"concept"`
}

type CoverLetterRequest struct {
	JobTitle string `json:"jobTitle"`
	Resume   string `json:"resume"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds the HTTP API server and its collaborators.
type Server struct {
	Host    string
	Port    string
	Version string

	AppConfig *config.Config

	Store    *store.Memory
	Engine   *workflow.Engine
	Advisory *advisory.Service

	// API Authentication
	APIKeys map[string]bool

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   config.RateLimitConfig
	RateLimiter *RateLimiter

	Logger *campusworksErrors.Logger

	// Set during Start; nil until observability is initialized.
	om *observability.ObservabilityManager
}

// NewServer creates a Server from the application config plus the domain
// services it fronts.
func NewServer(appCfg *config.Config, version string, st *store.Memory, engine *workflow.Engine, adv *advisory.Service, logger *campusworksErrors.Logger) *Server {
	apiKeyMap := make(map[string]bool)
	for _, key := range appCfg.Server.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if appCfg.Server.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			appCfg.Server.RateLimit.RequestsPerMin,
			appCfg.Server.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           appCfg.Server.Host,
		Port:           appCfg.Server.Port,
		Version:        version,
		AppConfig:      appCfg,
		Store:          st,
		Engine:         engine,
		Advisory:       adv,
		APIKeys:        apiKeyMap,
		MaxRequestSize: appCfg.App.MaxRequestSize,
		RateLimit:      appCfg.Server.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
