package service

import (
	"context"
	"sync/atomic"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"skillforge/internal/certificate/ids"
	"skillforge/internal/certificate/models"
	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/platform/audit"
	"skillforge/pkg/testutil"
)

func (s *ServiceSuite) TestRevoke() {
	s.Run("requires a session", func() {
		_, err := s.service.Revoke(s.ctx(), "CERT-ANYTHING0000")
		s.ErrorIs(err, models.ErrNotConnected)
	})

	s.connect()
	s.accept(1)
	receipt := s.issue(s.validRequest())

	s.Run("unknown certificate", func() {
		s.accept(1)
		_, err := s.service.Revoke(s.ctx(), "CERT-UNKNOWN00000")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("declined leaves certificate valid", func() {
		s.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c models.Confirmation) (bool, error) {
				s.Equal(models.ActionRevoke, c.Action)
				s.Equal(receipt.CertificateID, c.Subject)
				return false, nil
			})
		_, err := s.service.Revoke(s.ctx(), receipt.CertificateID)
		s.ErrorIs(err, models.ErrUserRejected)
		s.True(s.service.Verify(s.ctx(), receipt.CertificateID).IsValid)
	})

	s.Run("accepted revokes", func() {
		s.accept(1)
		txHash, err := s.service.Revoke(s.ctx(), receipt.CertificateID)
		s.Require().NoError(err)
		s.True(ids.ValidTransactionHash(txHash))
		s.NotEqual(receipt.TransactionHash, txHash)

		result := s.service.Verify(s.ctx(), receipt.CertificateID)
		s.False(result.IsValid)
		s.Equal(models.StatusRevoked, result.Status)
		s.Equal("Certificate has been revoked", result.Error)
		s.Require().NotNil(result.Certificate)
		s.False(result.Certificate.Verified)
	})

	s.Run("revoking twice succeeds", func() {
		s.accept(1)
		_, err := s.service.Revoke(s.ctx(), receipt.CertificateID)
		s.Require().NoError(err)
		s.Equal(models.StatusRevoked, s.service.Verify(s.ctx(), receipt.CertificateID).Status)
		s.Equal(2.0, promtest.ToFloat64(s.metrics.CertificatesRevoked))
	})

	s.Run("audited", func() {
		events, err := s.auditStore.ListByCertificate(context.Background(), receipt.CertificateID)
		s.Require().NoError(err)
		s.Require().Len(events, 3)
		s.Equal(audit.ActionCertificateRevoked, events[1].Action)
		s.Equal(audit.ActionCertificateRevoked, events[2].Action)
	})
}

func (s *ServiceSuite) TestRevokeCancelledBeforeConfirmation() {
	s.connect()
	s.accept(1)
	receipt := s.issue(s.validRequest())

	ctx, cancel := context.WithCancel(s.ctx())
	cancel()
	_, err := s.service.Revoke(ctx, receipt.CertificateID)

	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	s.False(s.store.IsRevoked(receipt.CertificateID))
}

func (s *ServiceSuite) TestConcurrentRevokesOfOneCertificate() {
	s.connect()
	s.accept(1)
	receipt := s.issue(s.validRequest())

	var confirmations atomic.Int32
	s.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Confirmation) (bool, error) {
			confirmations.Add(1)
			return true, nil
		}).AnyTimes()

	result := testutil.RunConcurrent(20, func(int) error {
		_, err := s.service.Revoke(s.ctx(), receipt.CertificateID)
		return err
	})

	s.Equal(int32(20), result.Successes)
	s.Zero(result.Total() - result.Successes)
	s.Equal(int32(20), confirmations.Load())
	s.True(s.store.IsRevoked(receipt.CertificateID))
}

func (s *ServiceSuite) TestConcurrentIssues() {
	s.connect()
	s.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()

	successes, errs := testutil.RunConcurrentCollect(30, func(int) error {
		_, err := s.service.Issue(s.ctx(), s.validRequest())
		return err
	})

	s.Empty(errs)
	s.Equal(int32(30), successes)
	s.Equal(30, s.store.Len())
}
