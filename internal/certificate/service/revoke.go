package service

import (
	"context"
	"time"

	"skillforge/internal/certificate/models"
	"skillforge/internal/platform/tracer"
	"skillforge/pkg/platform/audit"
	"skillforge/pkg/requestcontext"
)

// Revoke asks for confirmation and adds id to the revocation set, returning a
// fresh transaction hash. Revoking an already revoked id succeeds again.
func (s *Service) Revoke(ctx context.Context, id string) (txHash string, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanRevoke,
		tracer.String(tracer.AttrCertificateID, id),
		tracer.Duration(tracer.AttrSimulatedLatency, s.latency.Revoke),
	)
	defer func() {
		span.End(err)
		s.observeLatency("revoke", start)
	}()

	session, err := s.requireSession()
	if err != nil {
		return "", err
	}

	err = s.locks.WithLock(id, func() error {
		if err := wait(ctx, s.latency.Revoke); err != nil {
			return abandoned(err)
		}
		if err := s.confirm(ctx, span, models.ActionRevoke, id); err != nil {
			return err
		}

		ctx = context.WithoutCancel(ctx)
		if err := s.store.Revoke(id); err != nil {
			s.logger.WarnContext(ctx, "revoke rejected by store",
				"error", err,
				"certificate_id", id,
				"request_id", requestcontext.RequestID(ctx),
			)
			return translateError(err)
		}
		txHash = s.ids.TransactionHash()
		return nil
	})
	if err != nil {
		return "", err
	}

	if s.metrics != nil {
		s.metrics.IncrementRevoked()
	}
	span.SetAttributes(tracer.String(tracer.AttrTxHash, txHash))
	s.logAudit(ctx, audit.Event{
		Action:        audit.ActionCertificateRevoked,
		CertificateID: id,
		Actor:         session.Address,
		TxHash:        txHash,
	})
	s.logger.InfoContext(ctx, "certificate revoked",
		"certificate_id", id,
		"tx_hash", txHash,
		"request_id", requestcontext.RequestID(ctx),
	)
	return txHash, nil
}
