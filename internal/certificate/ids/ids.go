// Package ids generates certificate identifiers and simulated ledger hashes.
package ids

import (
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"sync"
)

const (
	CertificatePrefix = "CERT-"
	certificateLength = 12
	certificateAlpha  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	txHashLength = 64
	hexAlpha     = "0123456789abcdef"

	ContentPrefix = "Qm"
	contentLength = 44
	contentAlpha  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	BaseBlockNumber  uint64 = 18_000_000
	blockNumberRange uint64 = 1_000_000

	minGasFee   = 0.002
	gasFeeRange = 0.005
)

var (
	certificatePattern = regexp.MustCompile(`^CERT-[A-Z0-9]{12}$`)
	txHashPattern      = regexp.MustCompile(`^0x[0-9a-f]{64}$`)
	contentPattern     = regexp.MustCompile(`^Qm[A-Za-z0-9]{44}$`)
)

// Generator draws identifiers from a single random source.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a generator over src. A nil src uses a randomly seeded PCG.
func New(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rng: rand.New(src)}
}

// NewSeeded returns a deterministic generator for tests and demos.
func NewSeeded(seed uint64) *Generator {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (g *Generator) draw(prefix, alphabet string, n int) string {
	buf := make([]byte, 0, len(prefix)+n)
	buf = append(buf, prefix...)

	g.mu.Lock()
	defer g.mu.Unlock()
	for range n {
		buf = append(buf, alphabet[g.rng.IntN(len(alphabet))])
	}
	return string(buf)
}

// CertificateID returns "CERT-" followed by 12 characters of [A-Z0-9].
func (g *Generator) CertificateID() string {
	return g.draw(CertificatePrefix, certificateAlpha, certificateLength)
}

// TransactionHash returns "0x" followed by 64 lowercase hex characters.
func (g *Generator) TransactionHash() string {
	return g.draw("0x", hexAlpha, txHashLength)
}

// ContentHash returns "Qm" followed by 44 base62 characters.
func (g *Generator) ContentHash() string {
	return g.draw(ContentPrefix, contentAlpha, contentLength)
}

// BlockNumber returns a pseudo block height in [18000000, 19000000).
func (g *Generator) BlockNumber() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return BaseBlockNumber + g.rng.Uint64N(blockNumberRange)
}

// GasFee returns a fee in ETH within [0.002, 0.007), truncated to 6 decimals.
func (g *Generator) GasFee() string {
	g.mu.Lock()
	fee := g.rng.Float64()*gasFeeRange + minGasFee
	g.mu.Unlock()
	return strconv.FormatFloat(math.Floor(fee*1e6)/1e6, 'f', 6, 64)
}

// ValidCertificateID reports whether s has the certificate id format.
func ValidCertificateID(s string) bool {
	return certificatePattern.MatchString(s)
}

// ValidTransactionHash reports whether s has the transaction hash format.
func ValidTransactionHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// ValidContentHash reports whether s has the content hash format.
func ValidContentHash(s string) bool {
	return contentPattern.MatchString(s)
}
