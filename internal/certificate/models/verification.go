package models

import "time"

// VerificationStatus distinguishes the outcomes of a verify call.
type VerificationStatus string

const (
	StatusValid    VerificationStatus = "valid"
	StatusNotFound VerificationStatus = "not_found"
	StatusRevoked  VerificationStatus = "revoked"
	StatusExpired  VerificationStatus = "expired"
	// StatusUnavailable means the ledger could not be read; the id may exist.
	StatusUnavailable VerificationStatus = "unavailable"
)

// Verification error strings shown to verifiers.
const (
	MessageNotFound    = "Certificate not found"
	MessageRevoked     = "Certificate has been revoked"
	MessageExpired     = "Certificate has expired"
	MessageUnavailable = "Verification failed"
)

// VerificationResult is the outcome of verifying a certificate id.
// Certificate is nil for unknown ids and unreadable ledgers.
type VerificationResult struct {
	IsValid         bool               `json:"is_valid"`
	Status          VerificationStatus `json:"status"`
	Certificate     *Certificate       `json:"certificate,omitempty"`
	Error           string             `json:"error,omitempty"`
	TransactionHash string             `json:"transaction_hash,omitempty"`
	BlockTimestamp  int64              `json:"block_timestamp,omitempty"`
}

// Evaluate applies existence, then revocation, then expiry.
// A nil certificate means the id was never issued.
func Evaluate(cert *Certificate, revoked bool, now time.Time) VerificationResult {
	if cert == nil {
		return VerificationResult{Status: StatusNotFound, Error: MessageNotFound}
	}

	out := cert.Clone()
	out.Verified = !revoked
	switch {
	case revoked:
		return VerificationResult{Status: StatusRevoked, Certificate: &out, Error: MessageRevoked}
	case out.IsExpired(now):
		return VerificationResult{Status: StatusExpired, Certificate: &out, Error: MessageExpired}
	}
	return VerificationResult{
		IsValid:         true,
		Status:          StatusValid,
		Certificate:     &out,
		TransactionHash: out.TransactionHash,
		BlockTimestamp:  out.IssueDate.Unix(),
	}
}
