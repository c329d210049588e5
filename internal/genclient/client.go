package genclient

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"campusworks/internal/config"
	"campusworks/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// errEmptyResponse marks a successful call whose candidate carried no text.
var errEmptyResponse = stderrors.New("empty model response")

// Options configures a Client.
type Options struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int
	// Backoff is the delay schedule between attempts. Defaults to 1s/2s/4s.
	Backoff []time.Duration
	// AttemptTimeout bounds each individual call. Zero disables it.
	AttemptTimeout time.Duration
	// Breaker wraps the whole retry loop; nil disables it.
	Breaker *Breaker
	Logger  *errors.Logger
}

// Client wraps a generation Transport with per-attempt timeout, retry with
// exponential backoff, optional circuit breaking, and schema-constrained
// response validation. It holds no mutable state and is safe to share
// across concurrent callers; each call carries its own retry timers.
type Client struct {
	transport      Transport
	policy         retryPolicy
	attemptTimeout time.Duration
	breaker        *Breaker
	logger         *errors.Logger
}

// NewClient builds a client over the given transport.
func NewClient(t Transport, opts Options) *Client {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	return &Client{
		transport:      t,
		policy:         newRetryPolicy(opts.MaxAttempts, opts.Backoff),
		attemptTimeout: opts.AttemptTimeout,
		breaker:        opts.Breaker,
		logger:         opts.Logger,
	}
}

// NewGeminiClient wires a Gemini-backed client from a use-case config.
func NewGeminiClient(ctx context.Context, cfg config.OperationAIConfig, useCase string, logger *errors.Logger) (*Client, error) {
	transport, err := NewGeminiTransport(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create generation transport", err)
	}

	return NewClient(transport, Options{
		MaxAttempts:    *cfg.MaxAttempts,
		AttemptTimeout: *cfg.Timeout,
		Breaker:        NewBreaker(useCase, cfg.CircuitBreaker, logger),
		Logger:         logger,
	}), nil
}

// Breaker exposes the client's circuit breaker for health reporting.
func (c *Client) Breaker() *Breaker {
	return c.breaker
}

// Generate issues the request, retrying transient transport failures per
// the configured policy. With a schema present the response has any
// surrounding code fences stripped and must parse as JSON; a parse failure
// is a SchemaViolation and is not retried. Cancelling ctx abandons the call
// with the context's error; the client mutates nothing, so a discarded
// in-flight result has no side effects.
func (c *Client) Generate(ctx context.Context, req Request) (Result, error) {
	tracer := otel.Tracer("campusworks.genclient")
	ctx, span := tracer.Start(ctx, "genclient.generate")
	defer span.End()

	span.SetAttributes(
		attribute.Int("gen.prompt_length", len(req.Prompt)),
		attribute.Bool("gen.structured", req.Schema != nil),
	)

	attempts := 0
	attemptFn := func() (string, error) {
		attempts++
		attemptCtx := ctx
		if c.attemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
			defer cancel()
		}

		text, err := c.transport.Generate(attemptCtx, req)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("Generation attempt failed",
					"attempt", attempts,
					"error", err.Error())
			}
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", errEmptyResponse
		}
		return text, nil
	}

	text, err := c.breaker.Execute(func() (string, error) {
		out, _, doErr := c.policy.do(ctx, attemptFn, func(e error) bool {
			if stderrors.Is(e, errEmptyResponse) {
				return false
			}
			return retryable(e)
		})
		return out, doErr
	})

	span.SetAttributes(attribute.Int("gen.attempts", attempts))

	if err != nil {
		// A caller-initiated cancellation is not a service failure.
		if stderrors.Is(err, context.Canceled) && ctx.Err() != nil {
			span.RecordError(err)
			return Result{}, err
		}

		kind := classify(err)
		if stderrors.Is(err, errEmptyResponse) {
			kind = KindInvalidResponse
		}
		genErr := &GenerationError{Kind: kind, Attempts: attempts, Err: err}
		span.RecordError(genErr)
		span.SetAttributes(attribute.String("gen.error_kind", kind.String()))
		return Result{}, genErr
	}

	if req.Schema == nil {
		span.SetAttributes(attribute.Bool("success", true))
		return Result{Text: text}, nil
	}

	stripped := stripCodeFences(text)
	if !json.Valid([]byte(stripped)) {
		genErr := &GenerationError{
			Kind:     KindSchemaViolation,
			Attempts: attempts,
			Err:      stderrors.New("response is not valid JSON after fence stripping"),
		}
		span.RecordError(genErr)
		span.SetAttributes(attribute.String("gen.error_kind", KindSchemaViolation.String()))
		return Result{}, genErr
	}

	span.SetAttributes(attribute.Bool("success", true))
	return Result{Text: stripped, JSON: json.RawMessage(stripped)}, nil
}

// stripCodeFences removes a surrounding markdown code fence the service
// sometimes wraps around JSON payloads.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
