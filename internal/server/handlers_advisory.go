package server

import (
	"net/http"
	"strings"
	"time"

	"campusworks/internal/advisory"
	"campusworks/internal/observability"
)

// createAdvisoryHandler builds the handler for one advisory endpoint. Every
// endpoint shares the same shape: validate input, call the service, record
// metrics, respond 200. Remote generation failures never surface as HTTP
// errors; the response carries the fallback with degraded set.
func (s *Server) createAdvisoryHandler(om *observability.ObservabilityManager, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("campusworks.api")
		ctx, span := tracer.Start(ctx, "api.advisory."+endpoint)
		defer span.End()

		start := time.Now()
		var body any
		var degraded bool

		switch endpoint {
		case "roadmap":
			var req RoadmapRequest
			if !s.parseAdvisoryRequest(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Goal) == "" {
				writeErrorResponse(w, "Missing goal", "goal field is required", http.StatusBadRequest)
				return
			}
			result := s.Advisory.GenerateRoadmap(ctx, req.Goal)
			body, degraded = result, result.Degraded

		case "quiz":
			var req QuizRequest
			if !s.parseAdvisoryRequest(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Topic) == "" {
				writeErrorResponse(w, "Missing topic", "topic field is required", http.StatusBadRequest)
				return
			}
			result := s.Advisory.GenerateQuiz(ctx, req.Topic)
			body, degraded = result, result.Degraded

		case "remediation":
			var req RemediationRequest
			if !s.parseAdvisoryRequest(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Topic) == "" {
				writeErrorResponse(w, "Missing topic", "topic field is required", http.StatusBadRequest)
				return
			}
			result := s.Advisory.BuildRemediationPlan(ctx, req.Topic)
			body, degraded = result, result.Degraded

		case "risk":
			var req RiskRequest
			if !s.parseAdvisoryRequest(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Skills) == "" {
				writeErrorResponse(w, "Missing skills", "skills field is required", http.StatusBadRequest)
				return
			}
			result := s.Advisory.AssessLayoffRisk(ctx, req.Skills)
			body, degraded = result, result.Degraded

		case "fit":
			var req FitRequest
			if !s.parseAdvisoryRequest(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Resume) == "" || strings.TrimSpace(req.JobDescription) == "" {
				writeErrorResponse(w, "Missing fields", "resume and jobDescription fields are required", http.StatusBadRequest)
				return
			}
			result := s.Advisory.ScoreCandidateFit(ctx, req.Resume, req.JobDescription)
			body, degraded = result, result.Degraded

		case "explain":
			var req ExplainRequest
			if !s.parseAdvisoryRequest(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Concept) == "" {
				writeErrorResponse(w, "Missing concept", "concept field is required", http.StatusBadRequest)
				return
			}
			result := s.Advisory.ExplainConcept(ctx, req.Concept)
			body, degraded = result, result.Degraded

		case "cover-letter":
			var req CoverLetterRequest
			if !s.parseAdvisoryRequest(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.JobTitle) == "" {
				writeErrorResponse(w, "Missing job title", "jobTitle field is required", http.StatusBadRequest)
				return
			}
			result := s.Advisory.DraftCoverLetter(ctx, req.JobTitle, req.Resume)
			body, degraded = result, result.Degraded

		case "chat":
			var req ChatRequest
			if !s.parseAdvisoryRequest(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Message) == "" {
				writeErrorResponse(w, "Missing message", "message field is required", http.StatusBadRequest)
				return
			}
			result := s.Advisory.CoachChat(ctx, req.Message)
			body, degraded = result, result.Degraded

		default:
			writeErrorResponse(w, "Unknown endpoint", endpoint, http.StatusNotFound)
			return
		}

		om.GetMetrics().TrackAdvisory(ctx, endpoint, start, degraded)
		writeJSONResponse(w, http.StatusOK, body)
	}
}

// courseRecommendationHandler maps a stated goal to a catalog course. Purely
// deterministic: no remote call is involved.
func (s *Server) courseRecommendationHandler(w http.ResponseWriter, r *http.Request) {
	goal := r.URL.Query().Get("goal")
	if strings.TrimSpace(goal) == "" {
		writeErrorResponse(w, "Missing goal", "goal query parameter is required", http.StatusBadRequest)
		return
	}

	courseID := advisory.RecommendCourse(goal)
	course, ok := s.Store.Courses.Get(courseID)
	if !ok {
		writeJSONResponse(w, http.StatusOK, map[string]any{"courseId": courseID})
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"courseId": courseID,
		"course":   course,
	})
}

// parseAdvisoryRequest decodes the body and writes the 400 itself on
// failure. Returns false when the handler should stop.
func (s *Server) parseAdvisoryRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := parseJSONRequest(r, v); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
