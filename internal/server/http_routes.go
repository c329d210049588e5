package server

import (
	"net/http"
	"strings"

	"campusworks/internal/observability"
)

// setupRoutes configures all HTTP routes and middleware.
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	rateLimit := s.createRateLimitMiddleware(om)
	sizeLimit := s.requestSizeLimitMiddleware()
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimit(s.authMiddleware(sizeLimit(h)))
	}

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)

	mux.HandleFunc("POST /api/auth/login", rateLimit(sizeLimit(s.loginHandler)))
	mux.HandleFunc("POST /api/auth/register", rateLimit(sizeLimit(s.registerHandler)))

	mux.HandleFunc("GET /api/jobs", rateLimit(s.listJobsHandler))
	mux.HandleFunc("GET /api/courses", rateLimit(s.listCoursesHandler))
	mux.HandleFunc("GET /api/courses/{id}", rateLimit(s.getCourseHandler))

	mux.HandleFunc("POST /api/applications", protected(s.submitApplicationHandler))
	mux.HandleFunc("GET /api/applications", protected(s.listApplicationsHandler))
	mux.HandleFunc("POST /api/applications/{id}/decision", protected(s.decisionHandler))

	mux.HandleFunc("GET /api/users/{id}/notifications", protected(s.notificationsHandler))
	mux.HandleFunc("POST /api/notifications/{id}/read", protected(s.markReadHandler))

	mux.HandleFunc("POST /api/advisory/roadmap", protected(s.createAdvisoryHandler(om, "roadmap")))
	mux.HandleFunc("POST /api/advisory/quiz", protected(s.createAdvisoryHandler(om, "quiz")))
	mux.HandleFunc("POST /api/advisory/remediation", protected(s.createAdvisoryHandler(om, "remediation")))
	mux.HandleFunc("POST /api/advisory/risk", protected(s.createAdvisoryHandler(om, "risk")))
	mux.HandleFunc("POST /api/advisory/fit", protected(s.createAdvisoryHandler(om, "fit")))
	mux.HandleFunc("POST /api/advisory/explain", protected(s.createAdvisoryHandler(om, "explain")))
	mux.HandleFunc("POST /api/advisory/cover-letter", protected(s.createAdvisoryHandler(om, "cover-letter")))
	mux.HandleFunc("POST /api/advisory/chat", protected(s.createAdvisoryHandler(om, "chat")))
	mux.HandleFunc("GET /api/advisory/course-recommendation", rateLimit(s.courseRecommendationHandler))

	return mux
}

// authMiddleware provides API key authentication. Authentication is skipped
// entirely when no keys are configured.
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming request bodies.
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}
			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
