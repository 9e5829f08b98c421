package handler

import (
	"time"

	"skillforge/internal/certificate/models"
)

type ConnectResponse struct {
	Session     models.WalletSession `json:"session"`
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   time.Time            `json:"expires_at"`
}

type IssueResponse struct {
	models.IssueReceipt
	ExplorerURL     string `json:"explorer_url"`
	VerificationURL string `json:"verification_url"`
}

type RevokeResponse struct {
	CertificateID   string `json:"certificate_id"`
	TransactionHash string `json:"transaction_hash"`
	ExplorerURL     string `json:"explorer_url"`
}

type OwnerCertificatesResponse struct {
	Owner        string               `json:"owner"`
	Certificates []models.Certificate `json:"certificates"`
	Count        int                  `json:"count"`
}
