package server

import (
	"errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"campusworks/internal/observability"
	"campusworks/internal/types"
	"campusworks/internal/workflow"
)

// listJobsHandler returns the job catalog.
func (s *Server) listJobsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, s.Store.Jobs.List())
}

// listCoursesHandler returns the course catalog.
func (s *Server) listCoursesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, s.Store.Courses.List())
}

// getCourseHandler returns one course with its modules.
func (s *Server) getCourseHandler(w http.ResponseWriter, r *http.Request) {
	course, ok := s.Store.Courses.Get(r.PathValue("id"))
	if !ok {
		writeErrorResponse(w, "Not found", "course not found", http.StatusNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, course)
}

// submitApplicationHandler files a job application through the workflow
// engine.
func (s *Server) submitApplicationHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SubmitApplicationRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.JobID) == "" || strings.TrimSpace(req.StudentID) == "" {
		writeErrorResponse(w, "Missing fields", "jobId and studentId are required", http.StatusBadRequest)
		return
	}

	app, err := s.Engine.Submit(ctx, req.JobID, req.StudentID, req.CoverLetter)
	if err != nil {
		s.metrics().RecordBusinessMetric(ctx, "application_submitted", false)
		s.writeWorkflowError(w, err)
		return
	}

	s.metrics().RecordBusinessMetric(ctx, "application_submitted", true,
		attribute.String("job_id", req.JobID))
	writeJSONResponse(w, http.StatusCreated, app)
}

// listApplicationsHandler lists applications, optionally filtered by student
// or pending status.
func (s *Server) listApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	if studentID := r.URL.Query().Get("studentId"); studentID != "" {
		writeJSONResponse(w, http.StatusOK, s.Engine.ApplicationsForStudent(studentID))
		return
	}
	if r.URL.Query().Get("status") == string(types.StatusPending) {
		writeJSONResponse(w, http.StatusOK, s.Engine.PendingApplications())
		return
	}
	writeJSONResponse(w, http.StatusOK, s.Engine.AllApplications())
}

// decisionHandler resolves a pending application to Approved or Rejected.
func (s *Server) decisionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DecisionRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	app, err := s.Engine.Decide(ctx, r.PathValue("id"), types.ApplicationStatus(req.Outcome))
	if err != nil {
		s.metrics().RecordBusinessMetric(ctx, "application_decided", false)
		s.writeWorkflowError(w, err)
		return
	}

	s.metrics().RecordBusinessMetric(ctx, "application_decided", true,
		attribute.String("outcome", string(app.Status)))
	writeJSONResponse(w, http.StatusOK, app)
}

// notificationsHandler lists a user's notifications with the unread count.
func (s *Server) notificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"notifications": s.Engine.NotificationsForUser(userID),
		"unread":        s.Engine.UnreadCount(userID),
	})
}

// markReadHandler marks one notification as read. Idempotent.
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.Engine.MarkRead(ctx, r.PathValue("id")); err != nil {
		writeErrorResponse(w, "Internal error", err.Error(), http.StatusInternalServerError)
		return
	}
	s.metrics().RecordBusinessMetric(ctx, "notification_read", true)
	writeJSONResponse(w, http.StatusOK, map[string]any{"ok": true})
}

// writeWorkflowError maps workflow error codes onto HTTP statuses.
func (s *Server) writeWorkflowError(w http.ResponseWriter, err error) {
	var wfErr *workflow.WorkflowError
	if !errors.As(err, &wfErr) {
		writeErrorResponse(w, "Internal error", err.Error(), http.StatusInternalServerError)
		return
	}

	switch wfErr.Code {
	case workflow.CodeNotFound:
		writeErrorResponse(w, "Not found", wfErr.Message, http.StatusNotFound)
	case workflow.CodeDuplicateApplication:
		writeErrorResponse(w, "Duplicate application", wfErr.Message, http.StatusConflict)
	case workflow.CodeInvalidTransition:
		writeErrorResponse(w, "Invalid transition", wfErr.Message, http.StatusUnprocessableEntity)
	default:
		writeErrorResponse(w, "Workflow error", wfErr.Message, http.StatusInternalServerError)
	}
}

// metrics returns the custom metrics instance, falling back to an inert one.
func (s *Server) metrics() *observability.Metrics {
	if s.om != nil {
		return s.om.GetMetrics()
	}
	return &observability.Metrics{}
}
