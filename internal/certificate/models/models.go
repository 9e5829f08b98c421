package models

import (
	"slices"
	"time"
)

// Network constants for the simulated ledger.
const (
	SepoliaChainID     uint64 = 11155111
	SepoliaNetworkName        = "Sepolia Testnet"
	DefaultGrade              = "Pass"
	DefaultIssuerName         = "SkillForge Hub"
)

// Certificate is a course-completion credential recorded on the ledger.
// ExpirationDate nil means the certificate never expires. Verified is derived
// from the revocation set when the certificate is read.
type Certificate struct {
	ID               string     `json:"id"`
	RecipientAddress string     `json:"recipient_address"`
	RecipientName    string     `json:"recipient_name"`
	RecipientEmail   string     `json:"recipient_email"`
	CourseName       string     `json:"course_name"`
	CourseID         string     `json:"course_id"`
	IssuerName       string     `json:"issuer_name"`
	IssuerAddress    string     `json:"issuer_address"`
	IssueDate        time.Time  `json:"issue_date"`
	ExpirationDate   *time.Time `json:"expiration_date,omitempty"`
	Grade            string     `json:"grade,omitempty"`
	Skills           []string   `json:"skills"`
	TransactionHash  string     `json:"transaction_hash"`
	BlockNumber      *uint64    `json:"block_number,omitempty"`
	Verified         bool       `json:"verified"`
	MetadataHash     string     `json:"metadata_hash,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate stored records.
func (c Certificate) Clone() Certificate {
	out := c
	out.Skills = slices.Clone(c.Skills)
	if c.ExpirationDate != nil {
		exp := *c.ExpirationDate
		out.ExpirationDate = &exp
	}
	if c.BlockNumber != nil {
		bn := *c.BlockNumber
		out.BlockNumber = &bn
	}
	return out
}

// IsExpired reports whether now has reached the expiration date.
// The certificate is expired at exactly its expiration instant.
func (c Certificate) IsExpired(now time.Time) bool {
	return c.ExpirationDate != nil && !now.Before(*c.ExpirationDate)
}

// WalletSession is the result of connecting a wallet. A zero value means
// disconnected.
type WalletSession struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
	ChainID   uint64 `json:"chain_id,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

// IssueRequest carries the caller-supplied fields of a new certificate.
type IssueRequest struct {
	RecipientAddress string
	RecipientName    string
	RecipientEmail   string
	CourseName       string
	CourseID         string
	Skills           []string
	Grade            string
	ExpirationDate   *time.Time
}

// IssueReceipt identifies the certificate and transaction an issue produced.
type IssueReceipt struct {
	CertificateID   string `json:"certificate_id"`
	TransactionHash string `json:"transaction_hash"`
	BlockNumber     uint64 `json:"block_number"`
}

// Action names a ledger mutation that needs confirmation.
type Action string

const (
	ActionIssue  Action = "issue"
	ActionRevoke Action = "revoke"
)

// Confirmation describes a pending mutation shown to the wallet holder.
type Confirmation struct {
	Action  Action `json:"action"`
	Subject string `json:"subject"`
	GasFee  string `json:"gas_fee"`
	Network string `json:"network"`
}
