package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"skillforge/pkg/requestcontext"
)

const testAddress = "0x742d35cc6bf4532c4c2c8db8e64a1b13c4a2b19f"

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateSession(tokenString string) (*SessionClaims, error) {
	args := m.Called(tokenString)
	if claims := args.Get(0); claims != nil {
		return claims.(*SessionClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSessionChecker struct {
	mock.Mock
}

func (m *MockSessionChecker) IsSessionActive(ctx context.Context, address string) bool {
	args := m.Called(ctx, address)
	return args.Bool(0)
}

// mockHandler captures whether it ran and the context it saw.
type mockHandler struct {
	called  bool
	context context.Context
}

func (m *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.called = true
	m.context = r.Context()
	w.WriteHeader(http.StatusOK)
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	validator   *MockTokenValidator
	checker     *MockSessionChecker
	nextHandler *mockHandler
	middleware  func(http.Handler) http.Handler
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.validator = new(MockTokenValidator)
	s.checker = new(MockSessionChecker)
	s.nextHandler = &mockHandler{}
	s.middleware = RequireSession(s.validator, s.checker, slog.Default())
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) serve(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/certificates", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	s.middleware(s.nextHandler).ServeHTTP(rec, req)
	return rec
}

func (s *AuthMiddlewareTestSuite) TestValidSession() {
	s.validator.On("ValidateSession", "good-token").Return(&SessionClaims{Address: testAddress, JTI: "j1"}, nil)
	s.checker.On("IsSessionActive", mock.Anything, testAddress).Return(true)

	rec := s.serve("Bearer good-token")

	s.Equal(http.StatusOK, rec.Code)
	s.True(s.nextHandler.called)
	s.Equal(testAddress, requestcontext.WalletAddress(s.nextHandler.context))
}

func (s *AuthMiddlewareTestSuite) TestMissingHeader() {
	s.Run("no header", func() {
		rec := s.serve("")
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.False(s.nextHandler.called)
		s.Contains(rec.Body.String(), "Missing or invalid Authorization header")
	})

	s.Run("wrong scheme", func() {
		rec := s.serve("Basic abc")
		s.Equal(http.StatusUnauthorized, rec.Code)
		s.False(s.nextHandler.called)
	})
}

func (s *AuthMiddlewareTestSuite) TestInvalidToken() {
	s.validator.On("ValidateSession", "bad-token").Return(nil, errors.New("invalid token"))

	rec := s.serve("Bearer bad-token")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(s.nextHandler.called)
	s.Contains(rec.Body.String(), "Invalid or expired token")
	s.checker.AssertNotCalled(s.T(), "IsSessionActive", mock.Anything, mock.Anything)
}

func (s *AuthMiddlewareTestSuite) TestDisconnectedWallet() {
	s.validator.On("ValidateSession", "stale-token").Return(&SessionClaims{Address: testAddress}, nil)
	s.checker.On("IsSessionActive", mock.Anything, testAddress).Return(false)

	rec := s.serve("Bearer stale-token")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(s.nextHandler.called)
	s.Contains(rec.Body.String(), "not_connected")
}

func (s *AuthMiddlewareTestSuite) TestNilCheckerSkipsLiveness() {
	mw := RequireSession(s.validator, nil, slog.Default())
	s.validator.On("ValidateSession", "good-token").Return(&SessionClaims{Address: testAddress}, nil)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	mw(s.nextHandler).ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.True(s.nextHandler.called)
}
