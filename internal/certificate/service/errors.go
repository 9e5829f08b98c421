package service

import (
	"context"
	"errors"

	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/platform/sentinel"
)

// Dependency error handling: translates store and metadata sentinels into
// domain errors exactly once.

type errorMapping struct {
	sentinel error
	code     dErrors.Code
	message  string
}

// First match wins.
var errorMappings = []errorMapping{
	{sentinel.ErrNotFound, dErrors.CodeNotFound, "Certificate not found"},
	{sentinel.ErrAlreadyUsed, dErrors.CodeConflict, "certificate id already issued"},
	{sentinel.ErrInvalidState, dErrors.CodeInvariantViolation, "certificate violates ledger invariant"},
	{sentinel.ErrCorrupted, dErrors.CodeInvariantViolation, "metadata document failed its integrity check"},
	{sentinel.ErrUnavailable, dErrors.CodeInternal, "metadata backend unavailable"},
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			return dErrors.Wrap(err, m.code, m.message)
		}
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "ledger operation failed")
}

// abandoned reports a caller that stopped waiting before anything was committed.
func abandoned(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "operation timed out before confirmation")
	}
	return dErrors.Wrap(err, dErrors.CodeTimeout, "operation cancelled before confirmation")
}
