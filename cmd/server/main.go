package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"skillforge/internal/certificate"
	"skillforge/internal/certificate/adapters"
	"skillforge/internal/certificate/ethereum"
	"skillforge/internal/certificate/handler"
	"skillforge/internal/certificate/metadata"
	"skillforge/internal/certificate/ports"
	"skillforge/internal/certificate/service"
	"skillforge/internal/certificate/store"
	jwttoken "skillforge/internal/jwt_token"
	"skillforge/internal/platform/config"
	"skillforge/internal/platform/health"
	"skillforge/internal/platform/logger"
	"skillforge/internal/platform/metrics"
	"skillforge/internal/platform/tracer"
	"skillforge/pkg/platform/audit"
	"skillforge/pkg/platform/audit/publisher"
	"skillforge/pkg/platform/middleware/auth"
)

const (
	sessionIssuer   = "skillforge"
	shutdownTimeout = 10 * time.Second
)

// ledger is what the HTTP surface needs from either ledger variant.
type ledger interface {
	certificate.Ledger
	auth.SessionChecker
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	log.Info("initializing skillforge ledger",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"ledger_mode", cfg.Ledger.Mode,
		"metadata_backend", cfg.Metadata.Backend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)
	t := tracer.NewOTel()
	checks := health.New(cfg.Environment, cfg.Ledger.Mode)

	auditor := publisher.NewPublisher(audit.NewInMemoryStore(),
		publisher.WithAsyncBuffer(256),
		publisher.WithPublisherLogger(log),
	)
	defer auditor.Close()

	var confirmer ports.Confirmer = adapters.ContextConfirmer{
		Fallback: adapters.AutoConfirmer{Accept: cfg.Ledger.AutoConfirm},
	}

	meta, err := buildMetadataStore(ctx, cfg.Metadata, checks)
	if err != nil {
		return err
	}

	l, err := buildLedger(ctx, cfg, log, m, t, auditor, confirmer, meta, checks)
	if err != nil {
		return err
	}

	tokens := jwttoken.NewJWTService(cfg.SessionSigningKey, sessionIssuer, cfg.SessionTTL)
	guard := auth.RequireSession(jwttoken.NewSessionValidator(tokens), l, log)
	h := handler.New(l, tokens, guard, cfg.PublicBaseURL, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(h, checks, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildMetadataStore(ctx context.Context, cfg config.Metadata, checks *health.Handler) (ports.MetadataStore, error) {
	if cfg.Backend != config.MetadataBackendMinio {
		return metadata.NewInMemoryStore(), nil
	}
	s, err := metadata.NewMinioStore(ctx, metadata.MinioConfig{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	checks.RegisterCheck("metadata", s.Ping)
	return s, nil
}

func buildLedger(
	ctx context.Context,
	cfg config.Server,
	log *slog.Logger,
	m *metrics.Metrics,
	t tracer.Tracer,
	auditor *publisher.Publisher,
	confirmer ports.Confirmer,
	meta ports.MetadataStore,
	checks *health.Handler,
) (ledger, error) {
	if cfg.Ledger.Mode == config.LedgerModeEthereum {
		l, err := ethereum.Dial(ctx, cfg.Ethereum.RPCURL, cfg.Ethereum.ContractAddress, cfg.Ethereum.PrivateKey,
			ethereum.WithConfirmer(confirmer),
			ethereum.WithLogger(log),
			ethereum.WithTracer(t),
		)
		if err != nil {
			return nil, err
		}
		checks.RegisterCheck("ethereum_rpc", l.Ping)
		return l, nil
	}

	certs := store.New()
	if cfg.Ledger.SeedDemo {
		n := certs.Seed(store.DemoCertificates(cfg.Ledger.WalletAddress)...)
		log.Info("seeded demo certificates", "count", n)
	}
	svc, err := service.New(certs,
		service.WithWallet(adapters.NewStaticWallet("simulated", cfg.Ledger.WalletAddress)),
		service.WithConfirmer(confirmer),
		service.WithMetadataStore(meta),
		service.WithLatency(service.DefaultLatency().Scale(cfg.Ledger.LatencyScale)),
		service.WithIssuerName(cfg.Ledger.IssuerName),
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithTracer(t),
		service.WithAuditor(auditor),
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
