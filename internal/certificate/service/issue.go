package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"skillforge/internal/certificate/metadata"
	"skillforge/internal/certificate/models"
	"skillforge/internal/platform/tracer"
	"skillforge/pkg/platform/audit"
	"skillforge/pkg/requestcontext"
)

// Issue validates the request, reserves a fresh certificate id, waits for the
// submission delay, asks for confirmation and, once accepted, records the
// certificate. Nothing is stored unless the holder accepts.
func (s *Service) Issue(ctx context.Context, req models.IssueRequest) (receipt *models.IssueReceipt, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanIssue)
	defer func() {
		span.End(err)
		s.observeLatency("issue", start)
	}()

	session, err := s.requireSession()
	if err != nil {
		return nil, err
	}
	// The issue date is fixed at submission so the expiration checked here is
	// the one recorded, however long confirmation takes.
	now := requestcontext.Now(ctx)
	req.Normalize()
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	id, attempts, err := s.reserveID()
	if err != nil {
		s.logger.ErrorContext(ctx, "certificate id generation exhausted",
			"attempts", attempts,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, models.ErrDuplicateID
	}
	defer s.locks.Unlock(id)
	span.SetAttributes(
		tracer.String(tracer.AttrCertificateID, id),
		tracer.Int64(tracer.AttrIDAttempts, int64(attempts)),
		tracer.Duration(tracer.AttrSimulatedLatency, s.latency.Submission+s.latency.Block),
	)

	if err := wait(ctx, s.latency.Submission); err != nil {
		return nil, abandoned(err)
	}
	if err := s.confirm(ctx, span, models.ActionIssue, id); err != nil {
		return nil, err
	}

	// Accepted: the write completes even if the caller stops waiting.
	ctx = context.WithoutCancel(ctx)
	_ = wait(ctx, s.latency.Block)

	cert := s.buildCertificate(id, session, req, now)
	if err := s.writeMetadata(ctx, &cert); err != nil {
		return nil, err
	}
	if err := s.store.Put(cert); err != nil {
		s.discardMetadata(ctx, cert.MetadataHash)
		s.logger.ErrorContext(ctx, "failed to record certificate",
			"error", err,
			"certificate_id", id,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, translateError(err)
	}

	if s.metrics != nil {
		s.metrics.IncrementIssued()
	}
	span.SetAttributes(tracer.String(tracer.AttrTxHash, cert.TransactionHash))
	s.logAudit(ctx, audit.Event{
		Action:        audit.ActionCertificateIssued,
		CertificateID: id,
		Actor:         session.Address,
		TxHash:        cert.TransactionHash,
	})
	s.logger.InfoContext(ctx, "certificate issued",
		"certificate_id", id,
		"tx_hash", cert.TransactionHash,
		"recipient_address", cert.RecipientAddress,
		"request_id", requestcontext.RequestID(ctx),
	)

	return &models.IssueReceipt{
		CertificateID:   id,
		TransactionHash: cert.TransactionHash,
		BlockNumber:     *cert.BlockNumber,
	}, nil
}

// reserveID draws ids until one is unused and returns it with its lock held.
// The lock is held through the store write, so a concurrent issue drawing the
// same id sees it as taken.
func (s *Service) reserveID() (string, int, error) {
	var id string
	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		candidate := s.ids.CertificateID()
		s.locks.Lock(candidate)
		if s.store.Exists(candidate) {
			s.locks.Unlock(candidate)
			if s.metrics != nil {
				s.metrics.IncrementIDCollision()
			}
			return models.ErrDuplicateID
		}
		id = candidate
		return nil
	}, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxIDAttempts-1))
	return id, attempts, err
}

func (s *Service) buildCertificate(id string, session models.WalletSession, req models.IssueRequest, issuedAt time.Time) models.Certificate {
	grade := req.Grade
	if grade == "" {
		grade = s.defaultGrade
	}
	blockNumber := s.ids.BlockNumber()
	cert := models.Certificate{
		ID:               id,
		RecipientAddress: req.RecipientAddress,
		RecipientName:    req.RecipientName,
		RecipientEmail:   req.RecipientEmail,
		CourseName:       req.CourseName,
		CourseID:         req.CourseID,
		IssuerName:       s.issuerName,
		IssuerAddress:    session.Address,
		IssueDate:        issuedAt,
		Grade:            grade,
		Skills:           append([]string(nil), req.Skills...),
		TransactionHash:  s.ids.TransactionHash(),
		BlockNumber:      &blockNumber,
	}
	if req.ExpirationDate != nil {
		exp := *req.ExpirationDate
		cert.ExpirationDate = &exp
	}
	return cert
}

func (s *Service) writeMetadata(ctx context.Context, cert *models.Certificate) error {
	if s.metadata == nil {
		return nil
	}
	hash := s.ids.ContentHash()
	if err := s.metadata.Put(ctx, hash, metadata.Build(*cert)); err != nil {
		s.logger.ErrorContext(ctx, "failed to write certificate metadata",
			"error", err,
			"certificate_id", cert.ID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return translateError(err)
	}
	cert.MetadataHash = hash
	return nil
}

func (s *Service) discardMetadata(ctx context.Context, hash string) {
	if s.metadata == nil || hash == "" {
		return
	}
	if err := s.metadata.Delete(ctx, hash); err != nil {
		s.logger.WarnContext(ctx, "failed to discard orphaned metadata",
			"error", err,
			"metadata_hash", hash,
		)
	}
}
