// Package adapters provides in-process implementations of the ledger ports.
package adapters

import (
	"context"

	"skillforge/internal/certificate/models"
)

// StaticWallet is a wallet provider with a fixed account list.
type StaticWallet struct {
	label    string
	accounts []string
	reject   bool
}

// NewStaticWallet returns a wallet that always grants access to accounts.
func NewStaticWallet(label string, accounts ...string) *StaticWallet {
	return &StaticWallet{label: label, accounts: accounts}
}

// NewRejectingWallet returns a wallet whose holder declines every request.
func NewRejectingWallet(label string) *StaticWallet {
	return &StaticWallet{label: label, reject: true}
}

func (w *StaticWallet) Name() string {
	return w.label
}

func (w *StaticWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.reject {
		return nil, models.ErrUserRejected
	}
	out := make([]string, len(w.accounts))
	copy(out, w.accounts)
	return out, nil
}
