// Package ports defines what the ledger needs from the outside world: a
// wallet to sign with, a human to confirm mutations and a place to keep
// certificate metadata documents.
package ports

import (
	"context"

	"skillforge/internal/certificate/models"
)

// WalletProvider is the wallet capability found in the environment.
// RequestAccounts returns models.ErrUserRejected when the holder declines.
type WalletProvider interface {
	Name() string
	RequestAccounts(ctx context.Context) ([]string, error)
}

// Confirmer presents a pending mutation to the wallet holder.
// A false result with nil error means the holder declined.
type Confirmer interface {
	Confirm(ctx context.Context, c models.Confirmation) (bool, error)
}

// MetadataStore keeps off-ledger metadata documents keyed by content hash.
// Get returns an error wrapping sentinel.ErrNotFound for unknown hashes and
// sentinel.ErrCorrupted when the stored digest does not match. Delete is
// idempotent.
type MetadataStore interface {
	Put(ctx context.Context, contentHash string, doc *models.MetadataDocument) error
	Get(ctx context.Context, contentHash string) (*models.MetadataDocument, error)
	Delete(ctx context.Context, contentHash string) error
}
