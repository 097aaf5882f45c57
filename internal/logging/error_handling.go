package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes closer, logging a failure instead of returning
// it. Used for response bodies where the payload has already been read.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, operation string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logCleanupFailure(logger, "failed to close resource", "resource_management", operation, err)
	}
}

// HandleDeferredError runs cleanup from a defer and folds its failure into
// *errp. When the surrounding function already failed, both errors are kept
// and the original stays first, so errors.Is matches either.
func HandleDeferredError(errp *error, cleanup func() error, logger *slog.Logger, operation string) {
	if cleanup == nil {
		return
	}
	err := cleanup()
	if err == nil {
		return
	}

	logCleanupFailure(logger, "deferred operation failed", "deferred_cleanup", operation, err)
	wrapped := fmt.Errorf("%s failed: %w", operation, err)
	if *errp == nil {
		*errp = wrapped
		return
	}
	*errp = errors.Join(*errp, wrapped)
}

func logCleanupFailure(logger *slog.Logger, msg, component, operation string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	LogError(logger, msg, err,
		slog.String("operation", operation),
		slog.String("component", component))
}
