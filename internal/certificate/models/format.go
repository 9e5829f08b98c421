package models

import (
	"fmt"
	"strings"
)

var explorerBaseURLs = map[uint64]string{
	1:        "https://etherscan.io",
	11155111: "https://sepolia.etherscan.io",
	137:      "https://polygonscan.com",
	80001:    "https://mumbai.polygonscan.com",
}

// FormatAddress shortens an address to "0x1234...7890".
func FormatAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// FormatTransactionHash shortens a hash to its first 10 and last 8 characters.
func FormatTransactionHash(hash string) string {
	if len(hash) < 18 {
		return hash
	}
	return hash[:10] + "..." + hash[len(hash)-8:]
}

// ExplorerURL links a transaction on the block explorer for chainID.
// Unknown chains fall back to Sepolia.
func ExplorerURL(txHash string, chainID uint64) string {
	base, ok := explorerBaseURLs[chainID]
	if !ok {
		base = explorerBaseURLs[SepoliaChainID]
	}
	return fmt.Sprintf("%s/tx/%s", base, txHash)
}

// VerificationURL is the public page where anyone can check a certificate.
func VerificationURL(baseURL, certificateID string) string {
	return strings.TrimRight(baseURL, "/") + "/verify/" + certificateID
}

// ParseSkills splits a comma-separated list, dropping blanks.
func ParseSkills(s string) []string {
	skills := make([]string, 0)
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// SkillsString joins skills for display.
func SkillsString(skills []string) string {
	return strings.Join(skills, ", ")
}
