package advisory

// UserPrompts contains the prompt templates for each advisory use case,
// with fmt placeholders for the user-supplied free text.
type UserPrompts struct {
	Roadmap     string
	Quiz        string
	Remediation string
	Risk        string
	Fit         string
	Explain     string
	CoverLetter string
	Chat        string
}

// DefaultUserPrompts provides the default prompt templates
var DefaultUserPrompts = UserPrompts{
	Roadmap: `Create a 3-phase career learning roadmap for becoming a "%s".
Output strictly JSON. Return an ARRAY of objects. Each object must have:
- "phase": string title (e.g. "Phase 1: Basics")
- "items": array of 3-4 specific strings of topics to learn.`,

	Quiz: `Generate 3 multiple-choice quiz questions to test knowledge of "%s".
Output strictly JSON. Return an ARRAY of objects. Each object must have:
- "question": The question string.
- "options": An array of 3 distinct string options.
- "correctIndex": The integer index (0, 1, or 2) of the correct answer.`,

	Remediation: `Create a remediation plan for failing a quiz on "%s".
Output strictly JSON. Return an ARRAY of objects.
- "type": string (e.g. "Study", "Practice")
- "task": string`,

	Risk: `Analyze the following skill set for current job market stability: "%s".
Return a JSON object with:
- "riskLevel": One of "Low", "Medium", "High".
- "score": Integer 0-100 (100 is safest).
- "advice": A short sentence of career advice.`,

	Fit: `Match resume "%s" to job "%s".
Output strictly JSON object: { "score": 0-100, "analysis": string }`,

	Explain: `Explain this concept simply in 2 sentences: "%s"`,

	CoverLetter: `Write a short cover letter for "%s" based on resume: "%s".`,

	Chat: `Career Coach Chat. User: "%s". Reply concisely.`,
}

// resolvePrompt prefers a configured override over the hardcoded default.
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
