// Package store holds issued certificates and the revocation set.
package store

import (
	"fmt"

	"skillforge/pkg/platform/sentinel"
)

// Error Contract:
// - Put returns ErrDuplicateID when the id is already present
// - Put returns ErrInvariant when the record breaks a creation invariant
// - Revoke returns ErrNotFound when the id was never issued
// Callers translate these into domain errors.
var (
	ErrNotFound    = fmt.Errorf("certificate not found: %w", sentinel.ErrNotFound)
	ErrDuplicateID = fmt.Errorf("certificate id already issued: %w", sentinel.ErrAlreadyUsed)
	ErrInvariant   = fmt.Errorf("certificate violates ledger invariant: %w", sentinel.ErrInvalidState)
)
