// Package handler exposes the certificate ledger over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skillforge/internal/certificate"
	"skillforge/internal/certificate/adapters"
	"skillforge/internal/certificate/models"
	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/platform/httputil"
	"skillforge/pkg/requestcontext"
	"skillforge/pkg/validation"
)

// TokenIssuer signs session tokens for connected wallets.
type TokenIssuer interface {
	GenerateSessionToken(ctx context.Context, address string, chainID uint64, provider string) (string, time.Time, error)
}

// Handler serves wallet and certificate endpoints.
type Handler struct {
	ledger         certificate.Ledger
	tokens         TokenIssuer
	requireSession func(http.Handler) http.Handler
	publicBaseURL  string
	logger         *slog.Logger
}

// New creates a Handler. requireSession guards the mutating routes.
func New(ledger certificate.Ledger, tokens TokenIssuer, requireSession func(http.Handler) http.Handler, publicBaseURL string, logger *slog.Logger) *Handler {
	return &Handler{
		ledger:         ledger,
		tokens:         tokens,
		requireSession: requireSession,
		publicBaseURL:  publicBaseURL,
		logger:         logger,
	}
}

// Register registers the certificate routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/wallet/connect", h.handleConnect)
	r.Get("/certificates/{id}/verify", h.handleVerify)
	r.Get("/certificates/{id}/metadata", h.handleMetadata)
	r.Get("/owners/{address}/certificates", h.handleListByOwner)

	r.Group(func(r chi.Router) {
		r.Use(h.requireSession)
		r.Delete("/wallet/session", h.handleDisconnect)
		r.Post("/certificates", h.handleIssue)
		r.Post("/certificates/{id}/revoke", h.handleRevoke)
	})
}

func (h *Handler) handleConnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	session, err := h.ledger.Connect(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "wallet connection failed",
			"error", err,
			"request_id", requestID,
			"client_agent", requestcontext.ClientAgent(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	token, expiresAt, err := h.tokens.GenerateSessionToken(ctx, session.Address, session.ChainID, session.Provider)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sign session token",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ConnectResponse{
		Session:     session,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

func (h *Handler) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	h.ledger.Disconnect(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[IssueCertificateRequest](w, r, h.logger)
	if !ok {
		return
	}

	receipt, err := h.ledger.Issue(adapters.WithDecision(ctx, req.Confirm), req.toModel())
	if err != nil {
		h.logError(ctx, "failed to issue certificate", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, IssueResponse{
		IssueReceipt:    *receipt,
		ExplorerURL:     models.ExplorerURL(receipt.TransactionHash, h.ledger.Session().ChainID),
		VerificationURL: models.VerificationURL(h.publicBaseURL, receipt.CertificateID),
	})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RevokeCertificateRequest](w, r, h.logger)
	if !ok {
		return
	}

	txHash, err := h.ledger.Revoke(adapters.WithDecision(ctx, req.Confirm), id)
	if err != nil {
		h.logError(ctx, "failed to revoke certificate", err,
			"certificate_id", id,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RevokeResponse{
		CertificateID:   id,
		TransactionHash: txHash,
		ExplorerURL:     models.ExplorerURL(txHash, h.ledger.Session().ChainID),
	})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}
	// Verification outcomes are results, not errors.
	httputil.WriteJSON(w, http.StatusOK, h.ledger.Verify(r.Context(), id))
}

func (h *Handler) handleMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := h.certificateID(w, r)
	if !ok {
		return
	}

	doc, err := h.ledger.Metadata(ctx, id)
	if err != nil {
		h.logError(ctx, "failed to load certificate metadata", err,
			"certificate_id", id,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleListByOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	address := chi.URLParam(r, "address")
	if err := validation.CheckStringLength("address", address, validation.MaxAddressLength); err != nil {
		httputil.WriteError(w, err)
		return
	}

	certs, err := h.ledger.ListByOwner(ctx, address)
	if err != nil {
		h.logError(ctx, "failed to list owner certificates", err,
			"owner_address", address,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnerCertificatesResponse{
		Owner:        address,
		Certificates: certs,
		Count:        len(certs),
	})
}

func (h *Handler) certificateID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "certificate id is required"))
		return "", false
	}
	if err := validation.CheckStringLength("certificate_id", id, validation.MaxCertificateID); err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return id, true
}

// logError logs expected client outcomes at warn and everything else at error.
func (h *Handler) logError(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err)
	if dErrors.IsValidation(err) || dErrors.HasCode(err, dErrors.CodeUserRejected) ||
		dErrors.HasCode(err, dErrors.CodeNotFound) || dErrors.HasCode(err, dErrors.CodeNotConnected) {
		h.logger.WarnContext(ctx, msg, attrs...)
		return
	}
	h.logger.ErrorContext(ctx, msg, attrs...)
}
