package ethereum

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"skillforge/internal/certificate/models"
)

// contractCertificate mirrors the CertificateRegistry.Certificate tuple.
// Field names and order must match the ABI for abi.ConvertType.
type contractCertificate struct {
	RecipientAddress common.Address
	RecipientName    string
	RecipientEmail   string
	CourseName       string
	CourseId         string
	IssuerName       string
	IssuerAddress    common.Address
	IssueDate        *big.Int
	ExpirationDate   *big.Int
	Grade            string
	Skills           []string
	IsActive         bool
	TransactionHash  string
	BlockNumber      *big.Int
}

// toCertificate maps the contract tuple to a certificate. A zero recipient
// means the id was never issued and yields nil.
func toCertificate(id string, c contractCertificate) *models.Certificate {
	if c.RecipientAddress == (common.Address{}) {
		return nil
	}
	cert := &models.Certificate{
		ID:               id,
		RecipientAddress: c.RecipientAddress.Hex(),
		RecipientName:    c.RecipientName,
		RecipientEmail:   c.RecipientEmail,
		CourseName:       c.CourseName,
		CourseID:         c.CourseId,
		IssuerName:       c.IssuerName,
		IssuerAddress:    c.IssuerAddress.Hex(),
		IssueDate:        unixTime(c.IssueDate),
		Grade:            c.Grade,
		Skills:           append([]string{}, c.Skills...),
		TransactionHash:  c.TransactionHash,
		Verified:         c.IsActive,
	}
	if c.ExpirationDate != nil && c.ExpirationDate.Sign() > 0 {
		exp := unixTime(c.ExpirationDate)
		cert.ExpirationDate = &exp
	}
	if c.BlockNumber != nil && c.BlockNumber.Sign() > 0 {
		bn := c.BlockNumber.Uint64()
		cert.BlockNumber = &bn
	}
	return cert
}

func unixTime(v *big.Int) time.Time {
	if v == nil {
		return time.Time{}
	}
	return time.Unix(v.Int64(), 0).UTC()
}

// expirationArg encodes an optional expiration as unix seconds, zero for none.
func expirationArg(exp *time.Time) *big.Int {
	if exp == nil {
		return new(big.Int)
	}
	return big.NewInt(exp.Unix())
}

// loadSigner parses a hex private key, with or without 0x prefix, into a
// transactor for chainID.
func loadSigner(hexKey string, chainID *big.Int) (*bind.TransactOpts, common.Address, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("parse signer key: %w", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("create transactor: %w", err)
	}
	return opts, crypto.PubkeyToAddress(*key.Public().(*ecdsa.PublicKey)), nil
}

var weiPerEther = new(big.Float).SetInt(big.NewInt(1_000_000_000_000_000_000))

// formatFee renders gasPrice*gas in ether with six decimals.
func formatFee(gasPrice *big.Int, gas uint64) string {
	if gasPrice == nil {
		return "0.000000"
	}
	wei := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gas))
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther)
	return eth.Text('f', 6)
}

var networkNames = map[uint64]string{
	1:                     "Ethereum Mainnet",
	models.SepoliaChainID: models.SepoliaNetworkName,
	137:                   "Polygon",
	80001:                 "Polygon Mumbai",
}

func networkName(chainID uint64) string {
	if name, ok := networkNames[chainID]; ok {
		return name
	}
	return fmt.Sprintf("Chain %d", chainID)
}
