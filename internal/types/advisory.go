package types

// RiskLevel buckets a layoff risk assessment.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RoadmapPhase is one step of a generated learning roadmap.
type RoadmapPhase struct {
	Phase string   `json:"phase"`
	Items []string `json:"items"`
}

// Roadmap is an ordered learning plan toward a career goal. Degraded is
// true when the phases came from the static fallback rather than the model.
type Roadmap struct {
	Phases   []RoadmapPhase `json:"phases"`
	Degraded bool           `json:"degraded"`
}

// QuizQuestion is a single multiple-choice question with exactly one
// correct option.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Quiz is a generated skill assessment.
type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
	Degraded  bool           `json:"degraded"`
}

// RemediationTask is one item of a post-quiz remediation plan.
type RemediationTask struct {
	Type string `json:"type"`
	Task string `json:"task"`
}

// RemediationPlan lists tasks to recover from a failed skill quiz.
type RemediationPlan struct {
	Tasks    []RemediationTask `json:"tasks"`
	Degraded bool              `json:"degraded"`
}

// RiskAssessment scores a skill set for job market stability. Score runs
// 0-100 where 100 is safest.
type RiskAssessment struct {
	RiskLevel RiskLevel `json:"riskLevel"`
	Score     int       `json:"score"`
	Advice    string    `json:"advice"`
	Degraded  bool      `json:"degraded"`
}

// CandidateFit scores how well a resume matches a job description.
type CandidateFit struct {
	Score    int    `json:"score"`
	Analysis string `json:"analysis"`
	Degraded bool   `json:"degraded"`
}

// FreeText is an unstructured advisory reply (explanation, cover letter
// draft, or coach chat).
type FreeText struct {
	Text     string `json:"text"`
	Degraded bool   `json:"degraded"`
}
