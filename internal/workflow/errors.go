package workflow

import "fmt"

// Code classifies a workflow failure. Workflow errors are always surfaced
// to the caller: they represent either incorrect API usage or a legitimate
// business rule violation, and are never silently swallowed.
type Code string

const (
	CodeDuplicateApplication Code = "DuplicateApplication"
	CodeNotFound             Code = "NotFound"
	CodeInvalidTransition    Code = "InvalidTransition"
)

// WorkflowError carries the failure code plus a caller-facing message.
type WorkflowError struct {
	Code    Code
	Message string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any WorkflowError with the same code, so callers can use
// errors.Is against the sentinel values below.
func (e *WorkflowError) Is(target error) bool {
	t, ok := target.(*WorkflowError)
	return ok && t.Code == e.Code
}

// Sentinel values for errors.Is checks.
var (
	ErrDuplicateApplication = &WorkflowError{Code: CodeDuplicateApplication, Message: "an active application already exists for this job"}
	ErrNotFound             = &WorkflowError{Code: CodeNotFound, Message: "not found"}
	ErrInvalidTransition    = &WorkflowError{Code: CodeInvalidTransition, Message: "invalid status transition"}
)

func duplicateApplication(jobID, studentID string) *WorkflowError {
	return &WorkflowError{
		Code:    CodeDuplicateApplication,
		Message: fmt.Sprintf("student %s already has an active application for job %s", studentID, jobID),
	}
}

func notFound(what, id string) *WorkflowError {
	return &WorkflowError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", what, id),
	}
}

func invalidTransition(from, to string) *WorkflowError {
	return &WorkflowError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition application from %s to %s", from, to),
	}
}
