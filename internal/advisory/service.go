package advisory

import (
	"context"
	"encoding/json"
	"fmt"

	"campusworks/internal/config"
	"campusworks/internal/errors"
	"campusworks/internal/genclient"
	"campusworks/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

// explainInputLimit caps how much of a course module is embedded into the
// explain prompt.
const explainInputLimit = 300

// Generator issues one generation call. Satisfied by *genclient.Client;
// tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, req genclient.Request) (genclient.Result, error)
}

// Service is the domain advisory layer over the structured generation
// client. Every operation degrades to a static fallback instead of
// returning an error: callers always get a usable value, even during a
// total remote outage. Degradations are logged, never surfaced.
//
// All operations are read-only with respect to workflow state and safe to
// run fully concurrently.
type Service struct {
	generators   map[UseCase]Generator
	prompts      UserPrompts
	temperatures map[UseCase]*float32
	logger       *errors.Logger
}

// NewService builds the advisory service with one Gemini-backed client per
// use case, each with its own timeout/retry/breaker configuration.
func NewService(ctx context.Context, cfg *config.Config, logger *errors.Logger) (*Service, error) {
	generators := make(map[UseCase]Generator, len(AllUseCases))
	temperatures := make(map[UseCase]*float32, len(AllUseCases))

	for _, uc := range AllUseCases {
		opCfg := cfg.GetOperationConfig(string(uc))
		client, err := genclient.NewGeminiClient(ctx, opCfg, string(uc), logger)
		if err != nil {
			return nil, err
		}
		generators[uc] = client
		temperatures[uc] = opCfg.Temperature
	}

	return &Service{
		generators:   generators,
		prompts:      resolvePrompts(cfg.AI.CustomPrompts),
		temperatures: temperatures,
		logger:       logger,
	}, nil
}

// NewServiceWithGenerator builds a service that routes every use case
// through one generator. Used by tests and one-shot CLI commands.
func NewServiceWithGenerator(g Generator, logger *errors.Logger) *Service {
	generators := make(map[UseCase]Generator, len(AllUseCases))
	for _, uc := range AllUseCases {
		generators[uc] = g
	}
	return &Service{
		generators:   generators,
		prompts:      DefaultUserPrompts,
		temperatures: map[UseCase]*float32{},
		logger:       logger,
	}
}

func resolvePrompts(overrides config.PromptConfig) UserPrompts {
	return UserPrompts{
		Roadmap:     resolvePrompt(overrides.Roadmap, DefaultUserPrompts.Roadmap),
		Quiz:        resolvePrompt(overrides.Quiz, DefaultUserPrompts.Quiz),
		Remediation: resolvePrompt(overrides.Remediation, DefaultUserPrompts.Remediation),
		Risk:        resolvePrompt(overrides.Risk, DefaultUserPrompts.Risk),
		Fit:         resolvePrompt(overrides.Fit, DefaultUserPrompts.Fit),
		Explain:     resolvePrompt(overrides.Explain, DefaultUserPrompts.Explain),
		CoverLetter: resolvePrompt(overrides.CoverLetter, DefaultUserPrompts.CoverLetter),
		Chat:        resolvePrompt(overrides.Chat, DefaultUserPrompts.Chat),
	}
}

// invokeStructured runs one schema-constrained generation and decodes the
// validated JSON payload into Out. Any failure, including a decode
// mismatch, comes back as an error for the caller to degrade on.
func invokeStructured[Out any](s *Service, ctx context.Context, uc UseCase, prompt string, schema *genai.Schema) (Out, error) {
	var output Out
	tracer := otel.Tracer("campusworks.advisory")
	ctx, span := tracer.Start(ctx, "advisory."+string(uc))
	defer span.End()

	span.SetAttributes(attribute.String("advisory.use_case", string(uc)))

	result, err := s.generators[uc].Generate(ctx, genclient.Request{
		Prompt:      prompt,
		Schema:      schema,
		Temperature: s.temperatures[uc],
	})
	if err != nil {
		span.RecordError(err)
		return output, err
	}

	if err := json.Unmarshal(result.JSON, &output); err != nil {
		span.RecordError(err)
		return output, fmt.Errorf("decoding %s response: %w", uc, err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return output, nil
}

// invokeFreeText runs one unconstrained generation.
func (s *Service) invokeFreeText(ctx context.Context, op string, prompt string) (string, error) {
	tracer := otel.Tracer("campusworks.advisory")
	ctx, span := tracer.Start(ctx, "advisory."+op)
	defer span.End()

	result, err := s.generators[UseCaseFreeText].Generate(ctx, genclient.Request{
		Prompt:      prompt,
		Temperature: s.temperatures[UseCaseFreeText],
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	span.SetAttributes(attribute.Bool("success", true))
	return result.Text, nil
}

// logDegraded records why an operation fell back to its static value.
func (s *Service) logDegraded(uc UseCase, op string, err error) {
	if s.logger == nil {
		return
	}
	args := []any{"use_case", string(uc), "operation", op, "error", err.Error()}
	if kind, ok := genclient.KindOf(err); ok {
		args = append(args, "error_kind", kind.String())
	}
	s.logger.Warn("Advisory operation degraded to fallback", args...)
}

// GenerateRoadmap synthesizes a 3-phase learning roadmap toward a career
// goal.
func (s *Service) GenerateRoadmap(ctx context.Context, goal string) types.Roadmap {
	prompt := fmt.Sprintf(s.prompts.Roadmap, goal)
	phases, err := invokeStructured[[]types.RoadmapPhase](s, ctx, UseCaseRoadmap, prompt, roadmapSchema())
	if err != nil {
		s.logDegraded(UseCaseRoadmap, "generate_roadmap", err)
		return fallbackRoadmap(goal)
	}
	return types.Roadmap{Phases: phases}
}

// GenerateQuiz produces a 3-question multiple-choice skill check.
func (s *Service) GenerateQuiz(ctx context.Context, topic string) types.Quiz {
	prompt := fmt.Sprintf(s.prompts.Quiz, topic)
	questions, err := invokeStructured[[]types.QuizQuestion](s, ctx, UseCaseQuiz, prompt, quizSchema())
	if err != nil {
		s.logDegraded(UseCaseQuiz, "generate_quiz", err)
		return fallbackQuiz(topic)
	}
	return types.Quiz{Questions: questions}
}

// BuildRemediationPlan plans recovery tasks after a failed skill quiz.
func (s *Service) BuildRemediationPlan(ctx context.Context, topic string) types.RemediationPlan {
	prompt := fmt.Sprintf(s.prompts.Remediation, topic)
	tasks, err := invokeStructured[[]types.RemediationTask](s, ctx, UseCaseRemediation, prompt, remediationSchema())
	if err != nil {
		s.logDegraded(UseCaseRemediation, "build_remediation_plan", err)
		return fallbackRemediation(topic)
	}
	return types.RemediationPlan{Tasks: tasks}
}

// AssessLayoffRisk scores a skill set for job market stability.
func (s *Service) AssessLayoffRisk(ctx context.Context, skills string) types.RiskAssessment {
	prompt := fmt.Sprintf(s.prompts.Risk, skills)
	assessment, err := invokeStructured[types.RiskAssessment](s, ctx, UseCaseRisk, prompt, riskSchema())
	if err != nil {
		s.logDegraded(UseCaseRisk, "assess_layoff_risk", err)
		return fallbackRisk()
	}
	assessment.Degraded = false
	return assessment
}

// ScoreCandidateFit matches a resume against a job description, producing
// an advisory score the workflow may display but never acts on
// authoritatively.
func (s *Service) ScoreCandidateFit(ctx context.Context, resume, jobDescription string) types.CandidateFit {
	prompt := fmt.Sprintf(s.prompts.Fit, resume, jobDescription)
	fit, err := invokeStructured[types.CandidateFit](s, ctx, UseCaseFit, prompt, fitSchema())
	if err != nil {
		s.logDegraded(UseCaseFit, "score_candidate_fit", err)
		return fallbackFit()
	}
	fit.Degraded = false
	return fit
}

// ExplainConcept produces a two-sentence plain explanation of course
// content. Input is truncated before prompting.
func (s *Service) ExplainConcept(ctx context.Context, concept string) types.FreeText {
	if len(concept) > explainInputLimit {
		concept = concept[:explainInputLimit] + "..."
	}
	text, err := s.invokeFreeText(ctx, "explain_concept", fmt.Sprintf(s.prompts.Explain, concept))
	if err != nil {
		s.logDegraded(UseCaseFreeText, "explain_concept", err)
		return types.FreeText{Text: fallbackExplanation, Degraded: true}
	}
	return types.FreeText{Text: text}
}

// DraftCoverLetter writes a short cover letter from a resume summary.
func (s *Service) DraftCoverLetter(ctx context.Context, jobTitle, resume string) types.FreeText {
	text, err := s.invokeFreeText(ctx, "draft_cover_letter", fmt.Sprintf(s.prompts.CoverLetter, jobTitle, resume))
	if err != nil {
		s.logDegraded(UseCaseFreeText, "draft_cover_letter", err)
		return types.FreeText{Text: fallbackCoverLetter, Degraded: true}
	}
	return types.FreeText{Text: text}
}

// CoachChat answers one career-coach chat message.
func (s *Service) CoachChat(ctx context.Context, message string) types.FreeText {
	text, err := s.invokeFreeText(ctx, "coach_chat", fmt.Sprintf(s.prompts.Chat, message))
	if err != nil {
		s.logDegraded(UseCaseFreeText, "coach_chat", err)
		return types.FreeText{Text: fallbackChatReply, Degraded: true}
	}
	return types.FreeText{Text: text}
}

// BreakerStats reports per-use-case circuit breaker health for the stats
// endpoint.
func (s *Service) BreakerStats() map[string]any {
	stats := make(map[string]any, len(s.generators))
	healthy := true
	for uc, g := range s.generators {
		client, ok := g.(*genclient.Client)
		if !ok {
			continue
		}
		stats[string(uc)] = client.Breaker().Stats()
		healthy = healthy && client.Breaker().Healthy()
	}
	stats["overall_healthy"] = healthy
	return stats
}
