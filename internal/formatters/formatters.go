package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"campusworks/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Roadmap", &RoadmapTextFormatter{})
	registry.RegisterFormatter("text", "Quiz", &QuizTextFormatter{})
	registry.RegisterFormatter("text", "RemediationPlan", &RemediationTextFormatter{})
	registry.RegisterFormatter("text", "RiskAssessment", &RiskTextFormatter{})
	registry.RegisterFormatter("text", "CandidateFit", &FitTextFormatter{})
	registry.RegisterFormatter("text", "FreeText", &FreeTextFormatter{})

	return registry
}

// GlobalRegistry is the registry used by the CLI output path.
var GlobalRegistry = NewFormatterRegistry()

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.Roadmap:
		return "Roadmap"
	case types.Quiz:
		return "Quiz"
	case types.RemediationPlan:
		return "RemediationPlan"
	case types.RiskAssessment:
		return "RiskAssessment"
	case types.CandidateFit:
		return "CandidateFit"
	case types.FreeText:
		return "FreeText"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func degradedBanner(out *strings.Builder, degraded bool) {
	if degraded {
		out.WriteString("(generated offline: advisory service unavailable)\n\n")
	}
}

// RoadmapTextFormatter handles text formatting for learning roadmaps
type RoadmapTextFormatter struct{}

func (f *RoadmapTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.Roadmap)
	if !ok {
		return "", fmt.Errorf("expected Roadmap, got %T", data)
	}

	var out strings.Builder
	out.WriteString("=== LEARNING ROADMAP ===\n\n")
	degradedBanner(&out, result.Degraded)
	for _, phase := range result.Phases {
		out.WriteString(phase.Phase + "\n")
		for _, item := range phase.Items {
			out.WriteString("  - " + item + "\n")
		}
		out.WriteString("\n")
	}
	return out.String(), nil
}

func (f *RoadmapTextFormatter) SupportedType() string { return "Roadmap" }

// QuizTextFormatter handles text formatting for skill quizzes
type QuizTextFormatter struct{}

func (f *QuizTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.Quiz)
	if !ok {
		return "", fmt.Errorf("expected Quiz, got %T", data)
	}

	var out strings.Builder
	out.WriteString("=== SKILL QUIZ ===\n\n")
	degradedBanner(&out, result.Degraded)
	for i, q := range result.Questions {
		out.WriteString(fmt.Sprintf("%d. %s\n", i+1, q.Question))
		for j, opt := range q.Options {
			marker := " "
			if j == q.CorrectIndex {
				marker = "*"
			}
			out.WriteString(fmt.Sprintf("  %s %c) %s\n", marker, 'a'+j, opt))
		}
		out.WriteString("\n")
	}
	return out.String(), nil
}

func (f *QuizTextFormatter) SupportedType() string { return "Quiz" }

// RemediationTextFormatter handles text formatting for remediation plans
type RemediationTextFormatter struct{}

func (f *RemediationTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RemediationPlan)
	if !ok {
		return "", fmt.Errorf("expected RemediationPlan, got %T", data)
	}

	var out strings.Builder
	out.WriteString("=== REMEDIATION PLAN ===\n\n")
	degradedBanner(&out, result.Degraded)
	for _, task := range result.Tasks {
		out.WriteString(fmt.Sprintf("[%s] %s\n", task.Type, task.Task))
	}
	return out.String(), nil
}

func (f *RemediationTextFormatter) SupportedType() string { return "RemediationPlan" }

// RiskTextFormatter handles text formatting for layoff risk assessments
type RiskTextFormatter struct{}

func (f *RiskTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.RiskAssessment)
	if !ok {
		return "", fmt.Errorf("expected RiskAssessment, got %T", data)
	}

	var out strings.Builder
	out.WriteString("=== LAYOFF RISK ASSESSMENT ===\n\n")
	degradedBanner(&out, result.Degraded)
	out.WriteString(fmt.Sprintf("Risk level: %s\n", result.RiskLevel))
	out.WriteString(fmt.Sprintf("Stability score: %d/100\n\n", result.Score))
	out.WriteString(result.Advice + "\n")
	return out.String(), nil
}

func (f *RiskTextFormatter) SupportedType() string { return "RiskAssessment" }

// FitTextFormatter handles text formatting for candidate fit scores
type FitTextFormatter struct{}

func (f *FitTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CandidateFit)
	if !ok {
		return "", fmt.Errorf("expected CandidateFit, got %T", data)
	}

	var out strings.Builder
	out.WriteString("=== CANDIDATE FIT ===\n\n")
	degradedBanner(&out, result.Degraded)
	out.WriteString(fmt.Sprintf("Match score: %d/100\n\n", result.Score))
	out.WriteString(result.Analysis + "\n")
	return out.String(), nil
}

func (f *FitTextFormatter) SupportedType() string { return "CandidateFit" }

// FreeTextFormatter handles text formatting for unstructured replies
type FreeTextFormatter struct{}

func (f *FreeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.FreeText)
	if !ok {
		return "", fmt.Errorf("expected FreeText, got %T", data)
	}

	var out strings.Builder
	degradedBanner(&out, result.Degraded)
	out.WriteString(result.Text + "\n")
	return out.String(), nil
}

func (f *FreeTextFormatter) SupportedType() string { return "FreeText" }
