package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"skillforge/internal/certificate/adapters"
	"skillforge/internal/certificate/ids"
	"skillforge/internal/certificate/metadata"
	"skillforge/internal/certificate/models"
	"skillforge/internal/certificate/service/mocks"
	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/platform/audit"
	"skillforge/pkg/platform/sentinel"
)

func (s *ServiceSuite) TestIssueExampleScenario() {
	s.connect()
	s.accept(1)

	receipt := s.issue(s.validRequest())

	result := s.service.Verify(s.ctx(), receipt.CertificateID)
	s.True(result.IsValid)
	s.Equal(models.StatusValid, result.Status)
	s.Require().NotNil(result.Certificate)
	s.Equal([]string{"React"}, result.Certificate.Skills)
	s.Equal("A+", result.Certificate.Grade)
	s.Nil(result.Certificate.ExpirationDate)
}

func (s *ServiceSuite) TestIssueRoundTrip() {
	s.connect()
	s.accept(1)
	req := s.validRequest()
	req.Skills = []string{"Go", "  ", "Concurrency", "Testing"}
	req.Grade = "B"
	exp := s.now.Add(365 * 24 * time.Hour)
	req.ExpirationDate = &exp

	receipt := s.issue(req)

	s.True(ids.ValidCertificateID(receipt.CertificateID))
	s.True(ids.ValidTransactionHash(receipt.TransactionHash))
	s.GreaterOrEqual(receipt.BlockNumber, ids.BaseBlockNumber)

	cert, ok := s.store.Get(receipt.CertificateID)
	s.Require().True(ok)
	s.Equal(req.RecipientName, cert.RecipientName)
	s.Equal(req.CourseName, cert.CourseName)
	s.Equal([]string{"Go", "Concurrency", "Testing"}, cert.Skills)
	s.Equal("B", cert.Grade)
	s.Equal(exp, *cert.ExpirationDate)
	s.Equal(receipt.TransactionHash, cert.TransactionHash)
	s.Equal(receipt.BlockNumber, *cert.BlockNumber)
	s.Equal(s.now, cert.IssueDate)
	s.Equal("SkillForge Hub", cert.IssuerName)
	s.Equal(walletAddress, cert.IssuerAddress)
	s.True(cert.Verified)
	s.True(ids.ValidContentHash(cert.MetadataHash))
}

func (s *ServiceSuite) TestIssueDefaults() {
	s.connect()
	s.accept(2)

	s.Run("missing grade becomes Pass", func() {
		req := s.validRequest()
		req.Grade = ""
		cert, _ := s.store.Get(s.issue(req).CertificateID)
		s.Equal("Pass", cert.Grade)
	})

	s.Run("issuer name is configurable", func() {
		svc := s.newService(WithIssuerName("Acme Academy"), WithDefaultGrade(""))
		_, err := svc.Connect(s.ctx())
		s.Require().NoError(err)
		req := s.validRequest()
		req.Grade = ""

		receipt, err := svc.Issue(s.ctx(), req)
		s.Require().NoError(err)
		cert, _ := s.store.Get(receipt.CertificateID)
		s.Equal("Acme Academy", cert.IssuerName)
		s.Empty(cert.Grade)
	})
}

func (s *ServiceSuite) TestIssueFailsFast() {
	// An hour of latency would hang the test if validation waited for it.
	s.service = s.newService(WithLatency(DefaultLatency().Scale(1800)))

	s.Run("not connected", func() {
		_, err := s.service.Issue(s.ctx(), s.validRequest())
		s.ErrorIs(err, models.ErrNotConnected)
		s.True(dErrors.HasCode(err, dErrors.CodeNotConnected))
	})

	s.connect()
	cases := []struct {
		name   string
		mutate func(r *models.IssueRequest)
		code   dErrors.Code
	}{
		{"invalid address", func(r *models.IssueRequest) { r.RecipientAddress = "0x123" }, dErrors.CodeInvalidAddress},
		{"invalid email", func(r *models.IssueRequest) { r.RecipientEmail = "ada.example.com" }, dErrors.CodeInvalidEmail},
		{"empty skills", func(r *models.IssueRequest) { r.Skills = []string{" ", ""} }, dErrors.CodeEmptySkills},
		{"missing course", func(r *models.IssueRequest) { r.CourseName = "" }, dErrors.CodeValidation},
		{"expiration in past", func(r *models.IssueRequest) {
			exp := s.now.Add(-time.Minute)
			r.ExpirationDate = &exp
		}, dErrors.CodeInvalidExpiration},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := s.validRequest()
			tc.mutate(&req)
			start := time.Now()
			_, err := s.service.Issue(s.ctx(), req)
			s.True(dErrors.HasCode(err, tc.code), "got %v", err)
			s.True(dErrors.IsValidation(err))
			s.Less(time.Since(start), time.Second)
		})
	}
	s.Equal(0, s.store.Len())
}

func (s *ServiceSuite) TestIssueRejectedLeavesStoreUnchanged() {
	s.connect()
	var pending models.Confirmation
	s.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Confirmation) (bool, error) {
			pending = c
			return false, nil
		})

	_, err := s.service.Issue(s.ctx(), s.validRequest())

	s.ErrorIs(err, models.ErrUserRejected)
	s.Equal(0, s.store.Len())
	s.Equal(0, s.meta.Len())
	s.False(s.store.Exists(pending.Subject))
	s.Equal(models.ActionIssue, pending.Action)
	s.Equal("Sepolia Testnet", pending.Network)
	s.Regexp(`^0\.00[2-6]\d{3}$`, pending.GasFee)
	owned, err := s.service.ListByOwner(s.ctx(), recipientAddress)
	s.Require().NoError(err)
	s.Empty(owned)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ConfirmationsDenied.WithLabelValues("issue")))
}

func (s *ServiceSuite) TestIssueConfirmerError() {
	s.connect()
	s.confirmer.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, errors.New("popup crashed"))

	_, err := s.service.Issue(s.ctx(), s.validRequest())

	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal(0, s.store.Len())
}

func (s *ServiceSuite) TestIssueUniqueness() {
	s.connect()
	const n = 50
	s.accept(n)

	seen := make(map[string]struct{}, n)
	for range n {
		seen[s.issue(s.validRequest()).CertificateID] = struct{}{}
	}

	s.Len(seen, n)
	s.Equal(n, s.store.Len())
	owned, err := s.service.ListByOwner(s.ctx(), recipientAddress)
	s.Require().NoError(err)
	s.Len(owned, n)
}

func (s *ServiceSuite) TestIssueRetriesIDCollisions() {
	first := ids.NewSeeded(99).CertificateID()
	taken := s.validCert(first)
	s.Require().NoError(s.store.Put(taken))

	s.service = s.newService(WithGenerator(ids.NewSeeded(99)))
	s.connect()
	s.accept(1)

	receipt := s.issue(s.validRequest())

	s.NotEqual(first, receipt.CertificateID)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.IDCollisions))
	s.Equal(2, s.store.Len())
}

func (s *ServiceSuite) TestIssueCollisionRetriesAreBounded() {
	taken := s.validCert("CERT-TAKEN0000000")
	s.Require().NoError(s.store.Put(taken))
	s.service = s.newService(WithGenerator(fixedIDs{Generator: ids.NewSeeded(1), id: taken.ID}))
	s.connect()

	_, err := s.service.Issue(s.ctx(), s.validRequest())

	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.Equal(5.0, testutil.ToFloat64(s.metrics.IDCollisions))
	got, _ := s.store.Get(taken.ID)
	s.Equal(taken.RecipientName, got.RecipientName)
}

func (s *ServiceSuite) TestIssueCancelledBeforeConfirmation() {
	s.service = s.newService(WithLatency(Latency{Submission: time.Hour}))
	s.connect()

	ctx, cancel := context.WithTimeout(s.ctx(), 20*time.Millisecond)
	defer cancel()
	_, err := s.service.Issue(ctx, s.validRequest())

	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	s.Equal(0, s.store.Len())
}

func (s *ServiceSuite) TestIssueCompletesAfterAcceptanceDespiteCancellation() {
	ctx, cancel := context.WithCancel(s.ctx())
	defer cancel()
	confirmer := adapters.FuncConfirmer(func(context.Context, models.Confirmation) (bool, error) {
		cancel()
		return true, nil
	})
	s.service = s.newService(WithConfirmer(confirmer), WithLatency(Latency{Block: 10 * time.Millisecond}))
	s.connect()

	receipt, err := s.service.Issue(ctx, s.validRequest())

	s.Require().NoError(err)
	s.True(s.store.Exists(receipt.CertificateID))
}

func (s *ServiceSuite) TestIssueExpirationInsideConfirmationWindow() {
	s.service = s.newService(WithLatency(Latency{Submission: 30 * time.Millisecond, Block: 30 * time.Millisecond}))
	s.connect()
	s.accept(1)
	req := s.validRequest()
	exp := time.Now().Add(40 * time.Millisecond)
	req.ExpirationDate = &exp

	// wall clock: expiration passes while the transaction is pending
	receipt, err := s.service.Issue(context.Background(), req)

	s.Require().NoError(err)
	cert, ok := s.store.Get(receipt.CertificateID)
	s.Require().True(ok)
	s.True(cert.IssueDate.Before(*cert.ExpirationDate))
	s.Equal(1, s.store.Len())
}

func (s *ServiceSuite) TestIssueStoreFailureDiscardsMetadata() {
	mockStore := mocks.NewMockStore(s.ctrl)
	mockMeta := mocks.NewMockMetadataStore(s.ctrl)
	svc, err := New(mockStore,
		WithWallet(adapters.NewStaticWallet("static", walletAddress)),
		WithMetadataStore(mockMeta),
		WithLatency(NoLatency()),
		WithLogger(s.logger),
	)
	s.Require().NoError(err)
	_, err = svc.Connect(s.ctx())
	s.Require().NoError(err)

	var written string
	mockStore.EXPECT().Exists(gomock.Any()).Return(false)
	mockMeta.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hash string, _ *models.MetadataDocument) error {
			written = hash
			return nil
		})
	mockStore.EXPECT().Put(gomock.Any()).Return(fmt.Errorf("disk full: %w", sentinel.ErrInvalidState))
	mockMeta.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hash string) error {
			s.Equal(written, hash)
			return nil
		})

	_, err = svc.Issue(s.ctx(), s.validRequest())

	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *ServiceSuite) TestIssueMetadataFailureStoresNothing() {
	mockMeta := mocks.NewMockMetadataStore(s.ctrl)
	mockMeta.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("bucket gone: %w", sentinel.ErrUnavailable))
	s.service = s.newService(WithMetadataStore(mockMeta))
	s.connect()
	s.accept(1)

	_, err := s.service.Issue(s.ctx(), s.validRequest())

	s.Error(err)
	s.Equal(0, s.store.Len())
}

func (s *ServiceSuite) TestIssueEmitsAuditAndMetrics() {
	s.connect()
	s.accept(1)

	receipt := s.issue(s.validRequest())

	events, err := s.auditStore.ListByCertificate(context.Background(), receipt.CertificateID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionCertificateIssued, events[0].Action)
	s.Equal(walletAddress, events[0].Actor)
	s.Equal(receipt.TransactionHash, events[0].TxHash)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CertificatesIssued))
}

func (s *ServiceSuite) TestMetadata() {
	s.connect()
	s.accept(1)
	receipt := s.issue(s.validRequest())

	s.Run("document written at issuance", func() {
		doc, err := s.service.Metadata(s.ctx(), receipt.CertificateID)
		s.Require().NoError(err)
		s.Equal("Advanced React Certificate", doc.Name)
		s.Equal("A+", doc.Attribute(metadata.TraitGrade))
		s.Equal("March 1, 2025", doc.Attribute(metadata.TraitIssueDate))
	})

	s.Run("unknown certificate", func() {
		_, err := s.service.Metadata(s.ctx(), "CERT-UNKNOWN00000")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("seeded certificate without document", func() {
		s.store.Seed(s.validCert("CERT-SEEDED000000"))
		_, err := s.service.Metadata(s.ctx(), "CERT-SEEDED000000")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) validCert(id string) models.Certificate {
	return models.Certificate{
		ID:               id,
		RecipientAddress: recipientAddress,
		RecipientName:    "Grace Hopper",
		CourseName:       "Compilers",
		CourseID:         "CC-100",
		IssueDate:        s.now.Add(-48 * time.Hour),
		Skills:           []string{"COBOL"},
		TransactionHash:  ids.NewSeeded(5).TransactionHash(),
	}
}
