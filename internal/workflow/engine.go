package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"campusworks/internal/errors"
	"campusworks/internal/store"
	"campusworks/internal/types"
)

// Engine owns the application and notification lifecycles. All mutations go
// through a single mutex so the duplicate check and the insert of a
// submission form one critical section; two racing submissions for the same
// job can never both succeed.
type Engine struct {
	mu     chan struct{} // buffered size-1 channel used as a mutex, so Lock can honor ctx
	store  *store.Memory
	logger *errors.Logger
	tracer trace.Tracer

	now   func() time.Time
	newID func() string
}

// NewEngine creates an engine over the given store.
func NewEngine(s *store.Memory, logger *errors.Logger) *Engine {
	e := &Engine{
		mu:     make(chan struct{}, 1),
		store:  s,
		logger: logger,
		tracer: otel.Tracer("campusworks/workflow"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	return e
}

func (e *Engine) lock(ctx context.Context) error {
	select {
	case e.mu <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) unlock() {
	<-e.mu
}

// Submit files an application for a job on behalf of a student. The resume
// snapshot is a deep copy of the student's profile at submission time.
// Rejected applications do not block resubmission; a Pending or Approved one
// does.
func (e *Engine) Submit(ctx context.Context, jobID, studentID, coverLetter string) (types.Application, error) {
	ctx, span := e.tracer.Start(ctx, "workflow.submit",
		trace.WithAttributes(
			attribute.String("job.id", jobID),
			attribute.String("student.id", studentID),
		))
	defer span.End()

	if err := e.lock(ctx); err != nil {
		return types.Application{}, err
	}
	defer e.unlock()

	job, ok := e.store.Jobs.Get(jobID)
	if !ok {
		span.SetStatus(codes.Error, "job not found")
		return types.Application{}, notFound("job", jobID)
	}
	student, ok := e.store.Users.Get(studentID)
	if !ok {
		span.SetStatus(codes.Error, "student not found")
		return types.Application{}, notFound("student", studentID)
	}

	if _, exists := e.store.Applications.FindOne(func(a types.Application) bool {
		return a.JobID == jobID && a.StudentID == studentID && a.Status != types.StatusRejected
	}); exists {
		span.SetStatus(codes.Error, "duplicate application")
		e.logger.Warn("duplicate application rejected",
			"job_id", jobID, "student_id", studentID)
		return types.Application{}, duplicateApplication(jobID, studentID)
	}

	app := types.Application{
		ID:             e.newID(),
		JobID:          job.ID,
		JobTitle:       job.Title,
		StudentID:      student.ID,
		StudentName:    student.Name,
		Status:         types.StatusPending,
		ResumeSnapshot: student.Resume.Clone(),
		CoverLetter:    coverLetter,
		CreatedAt:      e.now(),
	}
	e.store.Applications.Insert(app.ID, app)

	e.notify(job.AdminID, "New application for "+job.Title+" from "+student.Name)
	e.notify(student.ID, "You applied for "+job.Title+". Good luck!")

	e.logger.Info("application submitted",
		"application_id", app.ID, "job_id", jobID, "student_id", studentID)
	span.SetAttributes(attribute.String("application.id", app.ID))
	return app, nil
}

// Decide resolves a pending application to Approved or Rejected and notifies
// the student. Any other outcome, or an application no longer Pending, is an
// invalid transition.
func (e *Engine) Decide(ctx context.Context, applicationID string, outcome types.ApplicationStatus) (types.Application, error) {
	ctx, span := e.tracer.Start(ctx, "workflow.decide",
		trace.WithAttributes(
			attribute.String("application.id", applicationID),
			attribute.String("outcome", string(outcome)),
		))
	defer span.End()

	if outcome != types.StatusApproved && outcome != types.StatusRejected {
		span.SetStatus(codes.Error, "invalid outcome")
		return types.Application{}, invalidTransition(string(types.StatusPending), string(outcome))
	}

	if err := e.lock(ctx); err != nil {
		return types.Application{}, err
	}
	defer e.unlock()

	app, ok := e.store.Applications.Get(applicationID)
	if !ok {
		span.SetStatus(codes.Error, "application not found")
		return types.Application{}, notFound("application", applicationID)
	}
	if app.Status != types.StatusPending {
		span.SetStatus(codes.Error, "already decided")
		return types.Application{}, invalidTransition(string(app.Status), string(outcome))
	}

	app.Status = outcome
	e.store.Applications.Update(applicationID, func(types.Application) types.Application {
		return app
	})

	e.notify(app.StudentID, "Your application for "+app.JobTitle+" was "+string(outcome))

	e.logger.Info("application decided",
		"application_id", applicationID, "outcome", string(outcome))
	return app, nil
}

// MarkRead flags a notification as read. It is idempotent: marking an
// already-read or unknown notification succeeds without effect.
func (e *Engine) MarkRead(ctx context.Context, notificationID string) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.unlock()

	e.store.Notifications.Update(notificationID, func(n types.Notification) types.Notification {
		n.Read = true
		return n
	})
	return nil
}

// notify appends a notification for a user. Callers hold the engine lock.
func (e *Engine) notify(userID, message string) {
	n := types.Notification{
		ID:        e.newID(),
		UserID:    userID,
		Message:   message,
		CreatedAt: e.now(),
	}
	e.store.Notifications.Insert(n.ID, n)
}

// ApplicationsForStudent lists a student's applications in submission order.
func (e *Engine) ApplicationsForStudent(studentID string) []types.Application {
	return e.store.Applications.Find(func(a types.Application) bool {
		return a.StudentID == studentID
	})
}

// PendingApplications lists every application still awaiting a decision.
func (e *Engine) PendingApplications() []types.Application {
	return e.store.Applications.Find(func(a types.Application) bool {
		return a.Status == types.StatusPending
	})
}

// AllApplications lists every application in submission order.
func (e *Engine) AllApplications() []types.Application {
	return e.store.Applications.List()
}

// NotificationsForUser lists a user's notifications in creation order.
func (e *Engine) NotificationsForUser(userID string) []types.Notification {
	return e.store.Notifications.Find(func(n types.Notification) bool {
		return n.UserID == userID
	})
}

// UnreadCount reports how many of a user's notifications are unread.
func (e *Engine) UnreadCount(userID string) int {
	return len(e.store.Notifications.Find(func(n types.Notification) bool {
		return n.UserID == userID && !n.Read
	}))
}
