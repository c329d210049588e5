package advisory

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"campusworks/internal/genclient"
	"campusworks/internal/types"
)

// fakeGenerator scripts one outcome for every call.
type fakeGenerator struct {
	result     genclient.Result
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, req genclient.Request) (genclient.Result, error) {
	f.lastPrompt = req.Prompt
	if f.err != nil {
		return genclient.Result{}, f.err
	}
	return f.result, nil
}

func failingService() *Service {
	return NewServiceWithGenerator(&fakeGenerator{err: errors.New("service down")}, nil)
}

func jsonService(payload string) *Service {
	return NewServiceWithGenerator(&fakeGenerator{result: genclient.Result{
		Text: payload,
		JSON: []byte(payload),
	}}, nil)
}

func TestGenerateRoadmapFallback(t *testing.T) {
	got := failingService().GenerateRoadmap(context.Background(), "Go Developer")

	want := types.Roadmap{
		Phases: []types.RoadmapPhase{
			{Phase: "Phase 1: Go Developer Basics", Items: []string{"Core Concepts", "Syntax & Tools", "First Project"}},
			{Phase: "Phase 2: Intermediate", Items: []string{"Advanced Patterns", "Best Practices", "Frameworks"}},
			{Phase: "Phase 3: Professional", Items: []string{"Real-world Application", "Optimization", "Career Prep"}},
		},
		Degraded: true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenerateRoadmap fallback = %+v, want %+v", got, want)
	}
}

func TestGenerateRoadmapSuccess(t *testing.T) {
	svc := jsonService(`[{"phase":"Phase 1: Fundamentals","items":["Variables","Functions"]}]`)

	got := svc.GenerateRoadmap(context.Background(), "Backend Engineer")
	if got.Degraded {
		t.Error("Degraded = true on success")
	}
	if len(got.Phases) != 1 || got.Phases[0].Phase != "Phase 1: Fundamentals" {
		t.Errorf("Phases = %+v", got.Phases)
	}
}

func TestGenerateQuizFallback(t *testing.T) {
	got := failingService().GenerateQuiz(context.Background(), "SQL")

	if !got.Degraded {
		t.Fatal("Degraded = false, want true")
	}
	if len(got.Questions) != 3 {
		t.Fatalf("len(Questions) = %d, want 3", len(got.Questions))
	}
	if got.Questions[0].Question != "What is a key concept in SQL?" {
		t.Errorf("first question = %q", got.Questions[0].Question)
	}
	if got.Questions[1].CorrectIndex != 1 {
		t.Errorf("second question CorrectIndex = %d, want 1", got.Questions[1].CorrectIndex)
	}
}

func TestBuildRemediationPlanFallback(t *testing.T) {
	got := failingService().BuildRemediationPlan(context.Background(), "React")

	if !got.Degraded {
		t.Fatal("Degraded = false, want true")
	}
	wantTypes := []string{"Foundational", "Practical", "Correction", "Mentorship"}
	if len(got.Tasks) != len(wantTypes) {
		t.Fatalf("len(Tasks) = %d, want %d", len(got.Tasks), len(wantTypes))
	}
	for i, task := range got.Tasks {
		if task.Type != wantTypes[i] {
			t.Errorf("Tasks[%d].Type = %q, want %q", i, task.Type, wantTypes[i])
		}
	}
	if !strings.Contains(got.Tasks[0].Task, "React") {
		t.Errorf("foundational task should mention the topic, got %q", got.Tasks[0].Task)
	}
}

func TestAssessLayoffRiskFallback(t *testing.T) {
	got := failingService().AssessLayoffRisk(context.Background(), "COBOL")

	want := types.RiskAssessment{
		RiskLevel: types.RiskMedium,
		Score:     50,
		Advice:    "Market data unavailable. Keep learning new skills.",
		Degraded:  true,
	}
	if got != want {
		t.Errorf("AssessLayoffRisk fallback = %+v, want %+v", got, want)
	}
}

func TestAssessLayoffRiskSuccess(t *testing.T) {
	svc := jsonService(`{"riskLevel":"Low","score":85,"advice":"Strong demand."}`)

	got := svc.AssessLayoffRisk(context.Background(), "Go, Kubernetes")
	if got.Degraded {
		t.Error("Degraded = true on success")
	}
	if got.RiskLevel != types.RiskLow || got.Score != 85 {
		t.Errorf("assessment = %+v", got)
	}
}

func TestScoreCandidateFitFallback(t *testing.T) {
	got := failingService().ScoreCandidateFit(context.Background(), "resume", "job")

	want := types.CandidateFit{Score: 0, Analysis: "AI Analysis unavailable.", Degraded: true}
	if got != want {
		t.Errorf("ScoreCandidateFit fallback = %+v, want %+v", got, want)
	}
}

func TestFreeTextFallbacks(t *testing.T) {
	svc := failingService()
	ctx := context.Background()

	tests := []struct {
		name string
		got  types.FreeText
		want string
	}{
		{name: "explain", got: svc.ExplainConcept(ctx, "closures"), want: "Unable to generate explanation."},
		{name: "cover letter", got: svc.DraftCoverLetter(ctx, "Barista", "resume"), want: "I am excited to apply for this position and believe my skills make me a great fit."},
		{name: "chat", got: svc.CoachChat(ctx, "help"), want: "I'm having trouble connecting right now. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Degraded {
				t.Error("Degraded = false, want true")
			}
			if tt.got.Text != tt.want {
				t.Errorf("Text = %q, want %q", tt.got.Text, tt.want)
			}
		})
	}
}

func TestExplainConceptTruncatesInput(t *testing.T) {
	gen := &fakeGenerator{result: genclient.Result{Text: "short answer"}}
	svc := NewServiceWithGenerator(gen, nil)

	long := strings.Repeat("x", 500)
	got := svc.ExplainConcept(context.Background(), long)
	if got.Degraded {
		t.Fatal("Degraded = true on success")
	}
	if !strings.Contains(gen.lastPrompt, strings.Repeat("x", 300)+"...") {
		t.Error("prompt should contain the truncated concept with ellipsis")
	}
	if strings.Contains(gen.lastPrompt, strings.Repeat("x", 301)) {
		t.Error("prompt should not contain more than 300 concept characters")
	}
}

func TestQuizDecodeMismatchDegrades(t *testing.T) {
	// Valid JSON of the wrong shape must degrade, not panic or half-fill.
	svc := jsonService(`{"unexpected":"object"}`)

	got := svc.GenerateQuiz(context.Background(), "Go")
	if !got.Degraded {
		t.Error("Degraded = false, want true on decode mismatch")
	}
}
