// Package service implements the simulated ledger: issue, verify, revoke and
// owner queries over an injected store, with simulated ledger latency and a
// confirmation step before each mutation.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skillforge/internal/certificate"
	"skillforge/internal/certificate/adapters"
	"skillforge/internal/certificate/ids"
	"skillforge/internal/certificate/models"
	"skillforge/internal/certificate/ports"
	"skillforge/internal/platform/metrics"
	"skillforge/internal/platform/tracer"
	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/platform/audit"
	platformsync "skillforge/pkg/platform/sync"
)

var _ certificate.Ledger = (*Service)(nil)

// Store is the certificate registry the service mutates.
type Store interface {
	Get(id string) (models.Certificate, bool)
	Put(cert models.Certificate) error
	Revoke(id string) error
	IsRevoked(id string) bool
	Exists(id string) bool
	ListByOwnerAddress(address string) []models.Certificate
}

// Generator produces identifiers, hashes and simulated chain values.
type Generator interface {
	CertificateID() string
	TransactionHash() string
	ContentHash() string
	BlockNumber() uint64
	GasFee() string
}

// AuditPublisher records certificate lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// maxIDAttempts bounds certificate id generation when ids collide.
const maxIDAttempts = 5

// Service is the simulated ledger. It owns the wallet session of the
// process; the store is injected and shared.
type Service struct {
	store     Store
	metadata  ports.MetadataStore
	wallet    ports.WalletProvider
	confirmer ports.Confirmer
	ids       Generator
	locks     *platformsync.ShardedMutex

	latency      Latency
	issuerName   string
	defaultGrade string

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	auditor AuditPublisher

	mu      sync.RWMutex
	session models.WalletSession
}

// Option configures a Service.
type Option func(*Service)

// WithWallet sets the wallet provider. Without one, Connect reports that no
// wallet is available.
func WithWallet(w ports.WalletProvider) Option {
	return func(s *Service) { s.wallet = w }
}

// WithConfirmer sets the confirmation step. Defaults to accepting everything.
func WithConfirmer(c ports.Confirmer) Option {
	return func(s *Service) { s.confirmer = c }
}

func WithMetadataStore(m ports.MetadataStore) Option {
	return func(s *Service) { s.metadata = m }
}

func WithGenerator(g Generator) Option {
	return func(s *Service) { s.ids = g }
}

func WithLatency(l Latency) Option {
	return func(s *Service) { s.latency = l }
}

func WithIssuerName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.issuerName = name
		}
	}
}

// WithDefaultGrade sets the grade recorded when a request has none.
// An empty grade keeps requests without one ungraded.
func WithDefaultGrade(grade string) Option {
	return func(s *Service) { s.defaultGrade = grade }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithAuditor(a AuditPublisher) Option {
	return func(s *Service) { s.auditor = a }
}

// New creates a simulated ledger over store.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	s := &Service{
		store:        store,
		confirmer:    adapters.AutoConfirmer{Accept: true},
		ids:          ids.New(nil),
		locks:        platformsync.NewShardedMutex(),
		latency:      DefaultLatency(),
		issuerName:   models.DefaultIssuerName,
		defaultGrade: models.DefaultGrade,
		logger:       slog.Default(),
		tracer:       tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Connect requests account access from the wallet and binds the session to
// the first account on the Sepolia test network.
func (s *Service) Connect(ctx context.Context) (session models.WalletSession, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanConnect)
	defer func() {
		span.End(err)
		s.observeLatency("connect", start)
	}()

	if s.wallet == nil {
		s.walletOutcome("unavailable")
		return models.WalletSession{}, models.ErrWalletUnavailable
	}

	accounts, err := s.wallet.RequestAccounts(ctx)
	if err != nil {
		if errors.Is(err, models.ErrUserRejected) {
			s.walletOutcome("rejected")
			return models.WalletSession{}, dErrors.Wrap(err, dErrors.CodeUserRejected, "Connection request was rejected by the user.")
		}
		s.walletOutcome("failed")
		return models.WalletSession{}, dErrors.Wrap(err, dErrors.CodeWalletUnavailable, "Failed to connect wallet")
	}
	if len(accounts) == 0 {
		s.walletOutcome("no_accounts")
		return models.WalletSession{}, models.ErrNoAccounts
	}

	session = models.WalletSession{
		Connected: true,
		Address:   accounts[0],
		ChainID:   models.SepoliaChainID,
		Provider:  s.wallet.Name(),
	}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.walletOutcome("connected")
	s.logAudit(ctx, audit.Event{Action: audit.ActionWalletConnected, Actor: session.Address})
	s.logger.InfoContext(ctx, "wallet connected",
		"wallet_address", session.Address,
		"chain_id", session.ChainID,
		"provider", session.Provider,
	)
	return session, nil
}

// Disconnect discards the wallet session.
func (s *Service) Disconnect(ctx context.Context) {
	s.mu.Lock()
	previous := s.session
	s.session = models.WalletSession{}
	s.mu.Unlock()

	if previous.Connected {
		s.logger.InfoContext(ctx, "wallet disconnected", "wallet_address", previous.Address)
	}
}

// Session returns the current wallet session.
func (s *Service) Session() models.WalletSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// IsSessionActive reports whether address is the connected wallet.
func (s *Service) IsSessionActive(_ context.Context, address string) bool {
	session := s.Session()
	return session.Connected && strings.EqualFold(session.Address, address)
}

func (s *Service) requireSession() (models.WalletSession, error) {
	session := s.Session()
	if !session.Connected {
		return models.WalletSession{}, models.ErrNotConnected
	}
	return session, nil
}
