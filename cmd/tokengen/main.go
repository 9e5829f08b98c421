// Package main generates wallet session tokens for local testing of the
// SkillForge API. Tokens use the dev signing key unless one is given and are
// only accepted while the named wallet is connected.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"skillforge/internal/certificate/models"
	jwttoken "skillforge/internal/jwt_token"
	"skillforge/internal/platform/config"
)

const (
	// Matches config.go when SESSION_SIGNING_KEY is not set.
	devSigningKey = "dev-session-key-change-in-production"

	sessionIssuer   = "skillforge"
	defaultTokenTTL = 12 * time.Hour
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresAt time.Time         `json:"expires_at"`
	Claims    map[string]any    `json:"claims"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	address := flag.String("address", config.DefaultWalletAddress, "Wallet address the token is issued to")
	chainID := flag.Uint64("chain-id", models.SepoliaChainID, "Chain id recorded in the token")
	provider := flag.String("provider", "simulated", "Wallet provider name")
	key := flag.String("key", "", "Signing key (defaults to the dev key)")
	ttl := flag.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	jsonOutput := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	if !common.IsHexAddress(*address) {
		fmt.Fprintf(os.Stderr, "invalid wallet address: %s\n", *address)
		os.Exit(1)
	}
	signingKey, keyType := *key, "custom"
	if signingKey == "" {
		signingKey, keyType = devSigningKey, "dev"
	}

	svc := jwttoken.NewJWTService(signingKey, sessionIssuer, *ttl)
	token, expiresAt, err := svc.GenerateSessionToken(context.Background(), *address, *chainID, *provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		printJSON(tokenOutput{
			Token:     token,
			Type:      "session_token",
			ExpiresAt: expiresAt,
			Claims: map[string]any{
				"sub":      *address,
				"chain_id": *chainID,
				"provider": *provider,
			},
			Usage: map[string]string{
				"header":      "Authorization: Bearer <token>",
				"signing_key": keyType,
			},
		})
		return
	}

	fmt.Println("Session Token (JWT)")
	fmt.Println("===================")
	fmt.Printf("Signing Key: %s\n", keyType)
	fmt.Printf("Expires At:  %s\n", expiresAt.Format(time.RFC3339))
	fmt.Printf("Wallet:      %s\n", *address)
	fmt.Printf("Chain ID:    %d\n", *chainID)
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -X POST http://localhost:8080/wallet/connect")
	fmt.Println("  curl -H \"Authorization: Bearer <token>\" -d @cert.json http://localhost:8080/certificates")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
