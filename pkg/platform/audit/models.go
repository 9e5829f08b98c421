package audit

import (
	"context"
	"time"
)

// Event records one certificate lifecycle action. It stays transport-agnostic
// so stores and sinks can fan out.
type Event struct {
	ID            string
	Timestamp     time.Time
	Action        string
	CertificateID string
	Actor         string // wallet address that signed the action
	TxHash        string
	Reason        string
	RequestID     string
}

// Action names emitted by the ledger.
const (
	ActionCertificateIssued  = "certificate_issued"
	ActionCertificateRevoked = "certificate_revoked"
	ActionWalletConnected    = "wallet_connected"
)

// Store persists audit events. Append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCertificate(ctx context.Context, certificateID string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
}
