package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for ledger activity.
type Metrics struct {
	CertificatesIssued  prometheus.Counter
	CertificatesRevoked prometheus.Counter
	ConfirmationsDenied *prometheus.CounterVec
	Verifications       *prometheus.CounterVec
	WalletConnections   *prometheus.CounterVec
	OperationLatency    *prometheus.HistogramVec
	IDCollisions        prometheus.Counter
}

// New creates and registers the ledger metrics on reg.
// Pass prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CertificatesIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "skillforge_certificates_issued_total",
			Help: "Total number of certificates issued",
		}),
		CertificatesRevoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "skillforge_certificates_revoked_total",
			Help: "Total number of accepted revocations, including repeats",
		}),
		ConfirmationsDenied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skillforge_confirmations_denied_total",
			Help: "Confirmation steps the user declined, labeled by action",
		}, []string{"action"}),
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skillforge_verifications_total",
			Help: "Verification outcomes, labeled by status",
		}, []string{"status"}),
		WalletConnections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "skillforge_wallet_connections_total",
			Help: "Wallet connection attempts, labeled by outcome",
		}, []string{"outcome"}),
		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skillforge_ledger_operation_seconds",
			Help:    "Wall time of ledger operations including simulated latency",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 3, 5, 8, 13},
		}, []string{"operation"}),
		IDCollisions: factory.NewCounter(prometheus.CounterOpts{
			Name: "skillforge_certificate_id_collisions_total",
			Help: "Generated certificate ids that were already taken",
		}),
	}
}

func (m *Metrics) IncrementIssued() {
	m.CertificatesIssued.Inc()
}

func (m *Metrics) IncrementRevoked() {
	m.CertificatesRevoked.Inc()
}

// IncrementConfirmationDenied records a declined confirmation for action.
func (m *Metrics) IncrementConfirmationDenied(action string) {
	m.ConfirmationsDenied.WithLabelValues(action).Inc()
}

// IncrementVerification records one verification outcome.
func (m *Metrics) IncrementVerification(status string) {
	m.Verifications.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementWalletConnection(outcome string) {
	m.WalletConnections.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementIDCollision() {
	m.IDCollisions.Inc()
}

// ObserveOperationLatency records the latency for a ledger operation.
func (m *Metrics) ObserveOperationLatency(operation string, durationSeconds float64) {
	m.OperationLatency.WithLabelValues(operation).Observe(durationSeconds)
}
