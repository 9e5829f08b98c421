// Package jwttoken issues and validates wallet session tokens.
package jwttoken

import (
	"context"
	"errors"
	"strings"
	"time"

	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/platform/middleware/auth"
	"skillforge/pkg/requestcontext"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims binds a token to the wallet address that connected.
type SessionClaims struct {
	ChainID  uint64 `json:"chain_id"`
	Provider string `json:"provider,omitempty"`
	jwt.RegisteredClaims
}

// Address returns the wallet address carried in the subject claim.
func (c *SessionClaims) Address() string {
	return c.Subject
}

// JWTService handles session token creation and validation.
type JWTService struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewJWTService(signingKey string, issuer string, tokenTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// GenerateSessionToken signs an HS256 token for a connected wallet.
// Expiry is computed from the request-scoped clock.
func (s *JWTService) GenerateSessionToken(ctx context.Context, address string, chainID uint64, provider string) (string, time.Time, error) {
	if address == "" {
		return "", time.Time{}, dErrors.New(dErrors.CodeBadRequest, "wallet address cannot be empty")
	}

	now := requestcontext.Now(ctx)
	expiresAt := now.Add(s.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		ChainID:  chainID,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.ToLower(address),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session token")
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature, algorithm, expiry and issuer.
func (s *JWTService) ValidateToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "empty token")
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Subject == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token missing wallet subject")
	}
	return claims, nil
}

// SessionValidator adapts JWTService to the auth middleware.
type SessionValidator struct {
	service *JWTService
}

func NewSessionValidator(service *JWTService) *SessionValidator {
	return &SessionValidator{service: service}
}

func (a *SessionValidator) ValidateSession(tokenString string) (*auth.SessionClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &auth.SessionClaims{Address: claims.Address(), JTI: claims.ID}, nil
}
