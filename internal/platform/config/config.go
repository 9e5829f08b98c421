package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Ledger modes.
const (
	LedgerModeSimulated = "simulated"
	LedgerModeEthereum  = "ethereum"
)

// Metadata backends.
const (
	MetadataBackendMemory = "memory"
	MetadataBackendMinio  = "minio"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string

	// PublicBaseURL prefixes the verification links handed to recipients.
	PublicBaseURL string

	SessionSigningKey string
	SessionTTL        time.Duration

	Ledger   Ledger
	Metadata Metadata
	Ethereum Ethereum
}

// Ledger configures the simulated ledger.
type Ledger struct {
	Mode          string
	LatencyScale  float64 // multiplies every simulated delay; 0 disables them
	SeedDemo      bool
	WalletAddress string // account the simulated wallet hands out on connect
	IssuerName    string
	AutoConfirm   bool // confirmation decision when a request does not carry one
}

// Metadata configures the off-store certificate metadata backend.
type Metadata struct {
	Backend   string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Ethereum configures the contract-backed ledger.
type Ethereum struct {
	RPCURL          string
	ContractAddress string
	PrivateKey      string
}

// DefaultWalletAddress is the account the simulated wallet returns when none is configured.
const DefaultWalletAddress = "0x742d35cc6bf4532c4c2c8db8e64a1b13c4a2b19f"

// DefaultIssuerName is stamped on every certificate the simulated ledger issues.
const DefaultIssuerName = "SkillForge Hub"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		// Development default; override outside local runs.
		signingKey = "dev-session-key-change-in-production"
	}

	return Server{
		Addr:              getEnv("SKILLFORGE_ADDR", ":8080"),
		Environment:       getEnv("ENVIRONMENT", "local"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		SessionSigningKey: signingKey,
		SessionTTL:        getDuration("SESSION_TTL", 12*time.Hour),
		Ledger: Ledger{
			Mode:          strings.ToLower(getEnv("LEDGER_MODE", LedgerModeSimulated)),
			LatencyScale:  getFloat("LEDGER_LATENCY_SCALE", 1.0),
			SeedDemo:      getBool("LEDGER_SEED_DEMO", true),
			WalletAddress: getEnv("LEDGER_WALLET_ADDRESS", DefaultWalletAddress),
			IssuerName:    getEnv("LEDGER_ISSUER_NAME", DefaultIssuerName),
			AutoConfirm:   getBool("LEDGER_AUTO_CONFIRM", false),
		},
		Metadata: Metadata{
			Backend:   strings.ToLower(getEnv("METADATA_BACKEND", MetadataBackendMemory)),
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "certificate-metadata"),
			UseSSL:    getBool("MINIO_USE_SSL", false),
		},
		Ethereum: Ethereum{
			RPCURL:          os.Getenv("ETH_RPC_URL"),
			ContractAddress: os.Getenv("ETH_CONTRACT_ADDRESS"),
			PrivateKey:      os.Getenv("ETH_PRIVATE_KEY"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
