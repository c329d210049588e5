package genclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Kind classifies a generation failure.
type Kind int

const (
	// KindNetwork covers transport failures and non-success API statuses.
	KindNetwork Kind = iota + 1
	// KindTimeout is a per-attempt deadline expiry.
	KindTimeout
	// KindInvalidResponse is a successful call that carried no usable text.
	KindInvalidResponse
	// KindSchemaViolation is a structured response that failed to parse
	// after code-fence stripping. Treated as a prompt/schema bug, never
	// retried.
	KindSchemaViolation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindInvalidResponse:
		return "invalid_response"
	case KindSchemaViolation:
		return "schema_violation"
	default:
		return "unknown"
	}
}

// GenerationError is the client's error taxonomy. Attempts records how many
// calls were actually issued before giving up.
type GenerationError struct {
	Kind     Kind
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s) after %d attempt(s): %v", e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("generation failed (%s) after %d attempt(s)", e.Kind, e.Attempts)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return 0, false
}

// classify maps a transport error onto the taxonomy.
func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	return KindNetwork
}

// retryable reports whether an attempt error is worth retrying. Only
// transient transport conditions qualify; a response the service did return
// is final.
func retryable(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	switch classify(err) {
	case KindNetwork, KindTimeout:
		return true
	}
	return false
}
