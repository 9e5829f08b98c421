package service

import (
	"context"
	"time"

	"skillforge/internal/certificate/models"
	"skillforge/internal/platform/tracer"
	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/requestcontext"
)

// Verify reports whether id is a valid certificate. Checks run in order:
// existence, revocation, expiry. It never mutates state; if ctx ends during
// the query delay the check runs immediately.
func (s *Service) Verify(ctx context.Context, id string) models.VerificationResult {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerify, tracer.String(tracer.AttrCertificateID, id))
	defer s.observeLatency("verify", start)

	_ = wait(ctx, s.latency.Query)

	var result models.VerificationResult
	if cert, ok := s.store.Get(id); ok {
		result = models.Evaluate(&cert, s.store.IsRevoked(id), requestcontext.Now(ctx))
	} else {
		result = models.Evaluate(nil, false, requestcontext.Now(ctx))
	}

	if s.metrics != nil {
		s.metrics.IncrementVerification(string(result.Status))
	}
	span.SetAttributes(tracer.String(tracer.AttrStatus, string(result.Status)))
	span.End(nil)
	return result
}

// ListByOwner returns the certificates issued to address, oldest first.
func (s *Service) ListByOwner(ctx context.Context, address string) (certs []models.Certificate, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanListByOwner, tracer.String(tracer.AttrOwnerAddress, address))
	defer func() {
		span.End(err)
		s.observeLatency("list_by_owner", start)
	}()

	if err := wait(ctx, s.latency.List); err != nil {
		return nil, abandoned(err)
	}
	certs = s.store.ListByOwnerAddress(address)
	span.SetAttributes(tracer.Int64(tracer.AttrResultCount, int64(len(certs))))
	return certs, nil
}

// Metadata loads the metadata document written when id was issued.
func (s *Service) Metadata(ctx context.Context, id string) (doc *models.MetadataDocument, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanMetadata, tracer.String(tracer.AttrCertificateID, id))
	defer func() { span.End(err) }()

	cert, ok := s.store.Get(id)
	if !ok {
		return nil, models.ErrNotFound
	}
	if cert.MetadataHash == "" || s.metadata == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "Certificate has no metadata document")
	}
	doc, err = s.metadata.Get(ctx, cert.MetadataHash)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load certificate metadata",
			"error", err,
			"certificate_id", id,
			"metadata_hash", cert.MetadataHash,
		)
		return nil, translateError(err)
	}
	return doc, nil
}
