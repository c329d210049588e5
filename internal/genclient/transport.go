package genclient

import (
	"context"
	"encoding/json"

	"google.golang.org/genai"
)

// Request describes one generation call. Immutable once built: the client
// never mutates it. A nil Schema requests free text; a non-nil Schema
// instructs the service to emit validated structured JSON of that shape.
type Request struct {
	Prompt      string
	Schema      *genai.Schema
	Temperature *float32
}

// Result is the outcome of a successful generate call. JSON is populated
// only when the request carried a schema and the payload parsed cleanly;
// validation is all-or-nothing.
type Result struct {
	Text string
	JSON json.RawMessage
}

// Transport issues a single generation attempt. Implementations perform no
// retries; the client owns the retry/backoff policy. Fakes implement this
// to unit-test the policy deterministically.
type Transport interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeminiTransport backs Transport with the Gemini API.
type GeminiTransport struct {
	client *genai.Client
	model  string
}

var _ Transport = (*GeminiTransport)(nil)

// NewGeminiTransport creates a transport bound to one model. The API key is
// provisioned out of band (environment or config), never user input.
func NewGeminiTransport(ctx context.Context, apiKey, model string) (*GeminiTransport, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiTransport{client: client, model: model}, nil
}

func (t *GeminiTransport) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}
	if req.Temperature != nil && *req.Temperature > 0 {
		cfg.Temperature = req.Temperature
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
