package common

import (
	"context"

	"campusworks/internal/errors"
)

// AdvisoryOperationFunc runs one advisory operation. Advisory operations
// never return an error: a remote failure yields the fallback output.
type AdvisoryOperationFunc[Output any] func(context.Context) Output

// DegradedFunc reports whether an output came from the static fallback.
type DegradedFunc[Output any] func(Output) bool

// RunAdvisoryCommand encapsulates the common logic for advisory CLI
// commands: invoke the operation, surface degradation in the log, and write
// the formatted result.
func RunAdvisoryCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	operation AdvisoryOperationFunc[Output],
	isDegraded DegradedFunc[Output],
) error {
	result := operation(ctx)

	if isDegraded != nil && isDegraded(result) {
		logger.Warn("Advisory service unavailable, using fallback output")
	}

	return NewOutputHandler(logger).HandleOutput(result, cmdConfig)
}
