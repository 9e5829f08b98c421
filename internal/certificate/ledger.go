// Package certificate is the course-certificate ledger. The Ledger interface
// is implemented by the simulated service and by the Ethereum contract
// adapter; the composition root picks one.
package certificate

import (
	"context"

	"skillforge/internal/certificate/models"
)

// Ledger is the capability set every ledger variant offers.
//
// Issue and Revoke require a connected wallet and pass through a
// confirmation step. Verify never fails; all outcomes are in the result.
// ListByOwner returns an empty slice for unknown owners.
type Ledger interface {
	Connect(ctx context.Context) (models.WalletSession, error)
	Disconnect(ctx context.Context)
	Session() models.WalletSession
	Issue(ctx context.Context, req models.IssueRequest) (*models.IssueReceipt, error)
	Verify(ctx context.Context, id string) models.VerificationResult
	Revoke(ctx context.Context, id string) (string, error)
	ListByOwner(ctx context.Context, address string) ([]models.Certificate, error)
	Metadata(ctx context.Context, id string) (*models.MetadataDocument, error)
}
