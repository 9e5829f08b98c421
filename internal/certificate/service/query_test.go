package service

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"skillforge/internal/certificate/models"
	"skillforge/pkg/requestcontext"
)

func (s *ServiceSuite) TestVerify() {
	s.Run("unknown id", func() {
		result := s.service.Verify(s.ctx(), "CERT-DOESNOTEXIST")
		s.False(result.IsValid)
		s.Equal(models.StatusNotFound, result.Status)
		s.Equal("Certificate not found", result.Error)
		s.Nil(result.Certificate)
	})

	s.Run("valid carries transaction", func() {
		cert := s.validCert("CERT-VALID0000000")
		s.store.Seed(cert)

		result := s.service.Verify(s.ctx(), cert.ID)
		s.True(result.IsValid)
		s.Equal(cert.TransactionHash, result.TransactionHash)
		s.Equal(cert.IssueDate.Unix(), result.BlockTimestamp)
		s.True(result.Certificate.Verified)
	})

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Verifications.WithLabelValues("valid")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Verifications.WithLabelValues("not_found")))
}

func (s *ServiceSuite) TestVerifyExpiryBoundary() {
	cert := s.validCert("CERT-EXPIRING0000")
	exp := s.now.Add(24 * time.Hour)
	cert.ExpirationDate = &exp
	s.store.Seed(cert)

	at := func(t time.Time) models.VerificationResult {
		return s.service.Verify(requestcontext.WithTime(s.ctx(), t), cert.ID)
	}

	s.Equal(models.StatusValid, at(exp.Add(-time.Millisecond)).Status)

	atExp := at(exp)
	s.Equal(models.StatusExpired, atExp.Status)
	s.False(atExp.IsValid)
	s.Equal("Certificate has expired", atExp.Error)
	s.NotNil(atExp.Certificate)

	s.Equal(models.StatusExpired, at(exp.Add(time.Millisecond)).Status)
}

func (s *ServiceSuite) TestVerifyRevokedTakesPrecedenceOverExpiry() {
	cert := s.validCert("CERT-BOTH00000000")
	exp := s.now.Add(time.Hour)
	cert.ExpirationDate = &exp
	s.store.Seed(cert)
	s.Require().NoError(s.store.Revoke(cert.ID))

	result := s.service.Verify(requestcontext.WithTime(s.ctx(), exp.Add(time.Hour)), cert.ID)

	s.Equal(models.StatusRevoked, result.Status)
	s.Equal("Certificate has been revoked", result.Error)
}

func (s *ServiceSuite) TestVerifyDoesNotMutate() {
	cert := s.validCert("CERT-READONLY0000")
	s.store.Seed(cert)

	first := s.service.Verify(s.ctx(), cert.ID)
	first.Certificate.Skills[0] = "tampered"
	second := s.service.Verify(s.ctx(), cert.ID)

	s.Equal([]string{"COBOL"}, second.Certificate.Skills)
	s.Equal(1, s.store.Len())
}

func (s *ServiceSuite) TestListByOwner() {
	older := s.validCert("CERT-OLDER0000000")
	newer := s.validCert("CERT-NEWER0000000")
	other := s.validCert("CERT-OTHER0000000")
	other.RecipientAddress = walletAddress
	s.store.Seed(older, other, newer)
	s.Require().NoError(s.store.Revoke(newer.ID))

	s.Run("oldest first across case", func() {
		certs, err := s.service.ListByOwner(s.ctx(), strings.ToLower(recipientAddress))
		s.Require().NoError(err)
		s.Require().Len(certs, 2)
		s.Equal(older.ID, certs[0].ID)
		s.Equal(newer.ID, certs[1].ID)
		s.True(certs[0].Verified)
		s.False(certs[1].Verified)
	})

	s.Run("unknown owner", func() {
		certs, err := s.service.ListByOwner(s.ctx(), "0x0000000000000000000000000000000000000001")
		s.Require().NoError(err)
		s.NotNil(certs)
		s.Empty(certs)
	})
}

func (s *ServiceSuite) TestLatencyScale() {
	base := DefaultLatency()

	half := base.Scale(0.5)
	s.Equal(time.Second, half.Submission)
	s.Equal(1500*time.Millisecond, half.Block)
	s.Equal(400*time.Millisecond, half.List)

	s.Equal(NoLatency(), base.Scale(0))
	s.Equal(NoLatency(), base.Scale(-1))
}
