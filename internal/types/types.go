package types

import "time"

// ApplicationStatus is the workflow state of a job application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

// Role identifies what kind of account a user holds.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RolePro     Role = "pro"
)

// Resume is the applicant profile data captured into application snapshots.
type Resume struct {
	Summary    string   `json:"summary"`
	GPA        string   `json:"gpa"`
	Experience []string `json:"experience"`
}

// Clone returns a deep copy of the resume, independent of the original.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}
	out := &Resume{
		Summary: r.Summary,
		GPA:     r.GPA,
	}
	if r.Experience != nil {
		out.Experience = make([]string, len(r.Experience))
		copy(out.Experience, r.Experience)
	}
	return out
}

// User is a portal account. Credentials are plain lookups; there is no
// hashing or token issuance in this system.
type User struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	Password        string   `json:"-"`
	Name            string   `json:"name"`
	Role            Role     `json:"role"`
	Avatar          string   `json:"avatar"`
	Resume          *Resume  `json:"resume,omitempty"`
	EnrolledCourses []string `json:"enrolledCourses,omitempty"`
}

// Job is an immutable catalog entry. AdminID identifies the user who
// administers applications for this posting.
type Job struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Dept        string   `json:"dept"`
	Pay         string   `json:"pay"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	AdminID     string   `json:"-"`
}

// Application records one student's submission for one job. ResumeSnapshot
// is a deep copy taken at submission time; later profile edits never alter
// it.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"`
	JobTitle       string            `json:"jobTitle"`
	StudentID      string            `json:"studentId"`
	StudentName    string            `json:"studentName"`
	Status         ApplicationStatus `json:"status"`
	ResumeSnapshot *Resume           `json:"resumeSnapshot,omitempty"`
	CoverLetter    string            `json:"coverLetter"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// Notification is emitted as a side effect of application submission or a
// status change. Only the Read flag ever mutates after creation.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// CourseModule is one unit of course content.
type CourseModule struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Course is a learning catalog entry; Tags drive deterministic course
// recommendation.
type Course struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Modules     []CourseModule `json:"modules"`
}
