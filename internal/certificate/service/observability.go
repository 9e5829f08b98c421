package service

import (
	"context"
	"time"

	"skillforge/internal/certificate/models"
	"skillforge/internal/platform/tracer"
	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/platform/audit"
	"skillforge/pkg/requestcontext"
)

// confirm presents the pending mutation and maps a decline to ErrUserRejected.
func (s *Service) confirm(ctx context.Context, span tracer.Span, action models.Action, subject string) error {
	pending := models.Confirmation{
		Action:  action,
		Subject: subject,
		GasFee:  s.ids.GasFee(),
		Network: models.SepoliaNetworkName,
	}
	span.AddEvent(tracer.EventConfirmationRequested, tracer.String("gas_fee", pending.GasFee))

	accepted, err := s.confirmer.Confirm(ctx, pending)
	if err != nil {
		if ctx.Err() != nil {
			return abandoned(ctx.Err())
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "confirmation failed")
	}
	if !accepted {
		span.AddEvent(tracer.EventConfirmationDenied)
		if s.metrics != nil {
			s.metrics.IncrementConfirmationDenied(string(action))
		}
		s.logger.InfoContext(ctx, "transaction rejected by user",
			"action", string(action),
			"certificate_id", subject,
			"request_id", requestcontext.RequestID(ctx),
		)
		return models.ErrUserRejected
	}
	span.AddEvent(tracer.EventConfirmationAccepted)
	return nil
}

// logAudit emits an audit event; failures are logged, never returned.
func (s *Service) logAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"action", event.Action,
			"certificate_id", event.CertificateID,
		)
	}
}

func (s *Service) walletOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementWalletConnection(outcome)
	}
}

func (s *Service) observeLatency(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperationLatency(operation, time.Since(start).Seconds())
	}
}
