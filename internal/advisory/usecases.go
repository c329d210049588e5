package advisory

import (
	"fmt"

	"campusworks/internal/types"

	"google.golang.org/genai"
)

// UseCase names one advisory operation. Each maps to its own generation
// configuration, prompt template, response schema, and static fallback.
type UseCase string

const (
	UseCaseRoadmap     UseCase = "roadmap"
	UseCaseQuiz        UseCase = "quiz"
	UseCaseRemediation UseCase = "remediation"
	UseCaseRisk        UseCase = "risk"
	UseCaseFit         UseCase = "fit"
	UseCaseFreeText    UseCase = "freetext"
)

// AllUseCases lists every advisory use case. Free text covers explain,
// cover letter, and chat.
var AllUseCases = []UseCase{
	UseCaseRoadmap,
	UseCaseQuiz,
	UseCaseRemediation,
	UseCaseRisk,
	UseCaseFit,
	UseCaseFreeText,
}

func roadmapSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"phase": {Type: genai.TypeString},
				"items": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"phase", "items"},
		},
	}
}

func quizSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString},
				"options": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
				"correctIndex": {Type: genai.TypeInteger},
			},
			Required: []string{"question", "options", "correctIndex"},
		},
	}
}

func remediationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"type": {Type: genai.TypeString},
				"task": {Type: genai.TypeString},
			},
			Required: []string{"type", "task"},
		},
	}
}

func riskSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"riskLevel": {Type: genai.TypeString, Enum: []string{"Low", "Medium", "High"}},
			"score":     {Type: genai.TypeInteger},
			"advice":    {Type: genai.TypeString},
		},
		Required: []string{"riskLevel", "score", "advice"},
	}
}

func fitSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":    {Type: genai.TypeInteger},
			"analysis": {Type: genai.TypeString},
		},
		Required: []string{"score", "analysis"},
	}
}

// Static fallbacks, returned with Degraded set when the remote service
// ultimately fails. Callers always receive a usable value.

func fallbackRoadmap(goal string) types.Roadmap {
	return types.Roadmap{
		Phases: []types.RoadmapPhase{
			{Phase: fmt.Sprintf("Phase 1: %s Basics", goal), Items: []string{"Core Concepts", "Syntax & Tools", "First Project"}},
			{Phase: "Phase 2: Intermediate", Items: []string{"Advanced Patterns", "Best Practices", "Frameworks"}},
			{Phase: "Phase 3: Professional", Items: []string{"Real-world Application", "Optimization", "Career Prep"}},
		},
		Degraded: true,
	}
}

func fallbackQuiz(topic string) types.Quiz {
	return types.Quiz{
		Questions: []types.QuizQuestion{
			{Question: fmt.Sprintf("What is a key concept in %s?", topic), Options: []string{"Concept A", "Concept B", "Concept C"}, CorrectIndex: 0},
			{Question: fmt.Sprintf("Which tool is popular for %s?", topic), Options: []string{"Tool X", "Tool Y", "Tool Z"}, CorrectIndex: 1},
			{Question: fmt.Sprintf("How do you start a %s project?", topic), Options: []string{"Method 1", "Method 2", "Method 3"}, CorrectIndex: 0},
		},
		Degraded: true,
	}
}

func fallbackRemediation(topic string) types.RemediationPlan {
	return types.RemediationPlan{
		Tasks: []types.RemediationTask{
			{Type: "Foundational", Task: fmt.Sprintf("Review official documentation for %s", topic)},
			{Type: "Practical", Task: `Build a small "Hello World" equivalent`},
			{Type: "Correction", Task: "Analyze where you went wrong in the quiz"},
			{Type: "Mentorship", Task: "Find a community forum for help"},
		},
		Degraded: true,
	}
}

func fallbackRisk() types.RiskAssessment {
	return types.RiskAssessment{
		RiskLevel: types.RiskMedium,
		Score:     50,
		Advice:    "Market data unavailable. Keep learning new skills.",
		Degraded:  true,
	}
}

func fallbackFit() types.CandidateFit {
	return types.CandidateFit{
		Score:    0,
		Analysis: "AI Analysis unavailable.",
		Degraded: true,
	}
}

const (
	fallbackExplanation = "Unable to generate explanation."
	fallbackCoverLetter = "I am excited to apply for this position and believe my skills make me a great fit."
	fallbackChatReply   = "I'm having trouble connecting right now. Please try again."
)
