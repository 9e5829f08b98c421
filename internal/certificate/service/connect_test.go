package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"skillforge/internal/certificate/adapters"
	"skillforge/internal/certificate/models"
	"skillforge/internal/certificate/service/mocks"
	dErrors "skillforge/pkg/domain-errors"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func (s *ServiceSuite) TestConnect() {
	s.Run("binds the first account on Sepolia", func() {
		session, err := s.service.Connect(s.ctx())
		s.Require().NoError(err)
		s.True(session.Connected)
		s.Equal(walletAddress, session.Address)
		s.Equal(uint64(11155111), session.ChainID)
		s.Equal("static", session.Provider)
		s.Equal(session, s.service.Session())
		s.True(s.service.IsSessionActive(context.Background(), "0x742D35CC6BF4532C4C2C8DB8E64A1B13C4A2B19F"))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.WalletConnections.WithLabelValues("connected")))
	})

	s.Run("no wallet capability", func() {
		svc, err := New(s.store, WithLogger(s.logger))
		s.Require().NoError(err)

		_, err = svc.Connect(s.ctx())
		s.True(dErrors.HasCode(err, dErrors.CodeWalletUnavailable))
		s.False(svc.Session().Connected)
	})

	s.Run("holder declines", func() {
		svc := s.newService(WithWallet(adapters.NewRejectingWallet("static")))
		_, err := svc.Connect(s.ctx())
		s.True(dErrors.HasCode(err, dErrors.CodeUserRejected))
		s.ErrorIs(err, models.ErrUserRejected)
	})

	s.Run("no unlocked accounts", func() {
		svc := s.newService(WithWallet(adapters.NewStaticWallet("static")))
		_, err := svc.Connect(s.ctx())
		s.True(dErrors.HasCode(err, dErrors.CodeWalletUnavailable))
		s.Equal("No accounts found. Please unlock your wallet.", err.Error())
	})

	s.Run("provider failure", func() {
		wallet := mocks.NewMockWalletProvider(s.ctrl)
		wallet.EXPECT().RequestAccounts(gomock.Any()).Return(nil, errors.New("rpc closed"))
		svc := s.newService(WithWallet(wallet))

		_, err := svc.Connect(s.ctx())
		s.True(dErrors.HasCode(err, dErrors.CodeWalletUnavailable))
	})
}

func (s *ServiceSuite) TestDisconnect() {
	s.connect()
	s.service.Disconnect(s.ctx())

	s.False(s.service.Session().Connected)
	s.False(s.service.IsSessionActive(context.Background(), walletAddress))

	_, err := s.service.Issue(s.ctx(), s.validRequest())
	s.ErrorIs(err, models.ErrNotConnected)
}
