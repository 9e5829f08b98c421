// Package ethereum implements the certificate ledger over a deployed
// CertificateRegistry contract.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"skillforge/internal/certificate"
	"skillforge/internal/certificate/adapters"
	"skillforge/internal/certificate/metadata"
	"skillforge/internal/certificate/models"
	"skillforge/internal/certificate/ports"
	"skillforge/internal/platform/tracer"
	dErrors "skillforge/pkg/domain-errors"
	"skillforge/pkg/platform/circuit"
	"skillforge/pkg/requestcontext"
)

var _ certificate.Ledger = (*Ledger)(nil)

// Gas budgets shown in the confirmation step.
const (
	issueGasEstimate  uint64 = 450_000
	revokeGasEstimate uint64 = 60_000
)

// Backend is the chain access the ledger needs beyond contract calls.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// registry is the bound contract. *bind.BoundContract satisfies it.
type registry interface {
	Call(opts *bind.CallOpts, results *[]any, method string, params ...any) error
	Transact(opts *bind.TransactOpts, method string, params ...any) (*types.Transaction, error)
}

// Ledger signs registry transactions with a configured key.
type Ledger struct {
	backend    Backend
	contract   registry
	privateKey string
	confirmer  ports.Confirmer
	logger     *slog.Logger
	tracer     tracer.Tracer
	mineWait   time.Duration
	rpc        *circuit.Breaker

	mu      sync.RWMutex
	session models.WalletSession
	signer  *bind.TransactOpts
}

// Option configures a Ledger.
type Option func(*Ledger)

func WithConfirmer(c ports.Confirmer) Option {
	return func(l *Ledger) { l.confirmer = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithTracer(t tracer.Tracer) Option {
	return func(l *Ledger) { l.tracer = t }
}

// WithMiningTimeout bounds how long an accepted transaction is waited on.
func WithMiningTimeout(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.mineWait = d
		}
	}
}

// Dial connects to rpcURL and binds the registry at contractAddress.
// An empty privateKey leaves the ledger read-only: Connect reports
// wallet_unavailable.
func Dial(ctx context.Context, rpcURL, contractAddress, privateKey string, opts ...Option) (*Ledger, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", contractAddress)
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial ethereum rpc: %w", err)
	}
	parsed, err := ParseABI()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("parse registry abi: %w", err)
	}
	contract := bind.NewBoundContract(common.HexToAddress(contractAddress), parsed, client, client, client)
	return newLedger(client, contract, privateKey, opts...), nil
}

func newLedger(backend Backend, contract registry, privateKey string, opts ...Option) *Ledger {
	l := &Ledger{
		backend:    backend,
		contract:   contract,
		privateKey: privateKey,
		confirmer:  adapters.AutoConfirmer{Accept: true},
		logger:     slog.Default(),
		tracer:     tracer.NewNoop(),
		mineWait:   2 * time.Minute,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.rpc = circuit.New("ethereum_rpc", circuit.WithStateChange(func(name string, from, to circuit.State) {
		l.logger.Warn("rpc circuit state changed", "circuit", name, "from", from.String(), "to", to.String())
	}))
	return l
}

// Ping checks the RPC endpoint answers. It fails fast while the RPC
// circuit is open.
func (l *Ledger) Ping(ctx context.Context) error {
	return l.rpc.Do(func() error {
		_, err := l.backend.ChainID(ctx)
		return err
	}, nil)
}

// Connect loads the signer key and binds the session to its address on the
// backend's chain.
func (l *Ledger) Connect(ctx context.Context) (session models.WalletSession, err error) {
	ctx, span := l.tracer.Start(ctx, tracer.SpanConnect)
	defer func() { span.End(err) }()

	if l.privateKey == "" {
		return models.WalletSession{}, models.ErrWalletUnavailable
	}
	chainID, err := l.backend.ChainID(ctx)
	if err != nil {
		return models.WalletSession{}, dErrors.Wrap(err, dErrors.CodeWalletUnavailable, "Failed to connect wallet")
	}
	signer, address, err := loadSigner(l.privateKey, chainID)
	if err != nil {
		return models.WalletSession{}, dErrors.Wrap(err, dErrors.CodeWalletUnavailable, "Failed to connect wallet")
	}

	session = models.WalletSession{
		Connected: true,
		Address:   address.Hex(),
		ChainID:   chainID.Uint64(),
		Provider:  "keystore",
	}
	l.mu.Lock()
	l.session = session
	l.signer = signer
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "wallet connected",
		"wallet_address", session.Address,
		"chain_id", session.ChainID,
		"provider", session.Provider,
	)
	return session, nil
}

func (l *Ledger) Disconnect(ctx context.Context) {
	l.mu.Lock()
	previous := l.session
	l.session = models.WalletSession{}
	l.signer = nil
	l.mu.Unlock()
	if previous.Connected {
		l.logger.InfoContext(ctx, "wallet disconnected", "wallet_address", previous.Address)
	}
}

func (l *Ledger) Session() models.WalletSession {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.session
}

// IsSessionActive reports whether address is the connected signer.
func (l *Ledger) IsSessionActive(_ context.Context, address string) bool {
	session := l.Session()
	return session.Connected && common.IsHexAddress(address) &&
		common.HexToAddress(address) == common.HexToAddress(session.Address)
}

func (l *Ledger) requireSigner() (models.WalletSession, *bind.TransactOpts, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.session.Connected || l.signer == nil {
		return models.WalletSession{}, nil, models.ErrNotConnected
	}
	opts := *l.signer
	return l.session, &opts, nil
}

// Issue submits issueCertificate and returns the id the registry assigned,
// read back from the recipient's certificate list once mined.
func (l *Ledger) Issue(ctx context.Context, req models.IssueRequest) (receipt *models.IssueReceipt, err error) {
	ctx, span := l.tracer.Start(ctx, tracer.SpanIssue)
	defer func() { span.End(err) }()

	session, signer, err := l.requireSigner()
	if err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := l.confirm(ctx, span, session, models.ActionIssue, req.RecipientAddress, issueGasEstimate); err != nil {
		return nil, err
	}

	recipient := common.HexToAddress(req.RecipientAddress)
	mined, err := l.transact(ctx, signer, methodIssue,
		recipient,
		req.RecipientName,
		req.RecipientEmail,
		req.CourseName,
		req.CourseID,
		req.Skills,
		req.Grade,
		expirationArg(req.ExpirationDate),
	)
	if err != nil {
		return nil, err
	}

	ids, err := l.idsByRecipient(context.WithoutCancel(ctx), recipient)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "issued certificate missing from recipient list")
	}
	id := ids[len(ids)-1]
	span.SetAttributes(
		tracer.String(tracer.AttrCertificateID, id),
		tracer.String(tracer.AttrTxHash, mined.TxHash.Hex()),
	)
	l.logger.InfoContext(ctx, "certificate issued",
		"certificate_id", id,
		"tx_hash", mined.TxHash.Hex(),
		"block_number", mined.BlockNumber.Uint64(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.IssueReceipt{
		CertificateID:   id,
		TransactionHash: mined.TxHash.Hex(),
		BlockNumber:     mined.BlockNumber.Uint64(),
	}, nil
}

// Revoke submits revokeCertificate for id.
func (l *Ledger) Revoke(ctx context.Context, id string) (txHash string, err error) {
	ctx, span := l.tracer.Start(ctx, tracer.SpanRevoke, tracer.String(tracer.AttrCertificateID, id))
	defer func() { span.End(err) }()

	session, signer, err := l.requireSigner()
	if err != nil {
		return "", err
	}
	cert, err := l.certificate(ctx, id)
	if err != nil {
		return "", err
	}
	if cert == nil {
		return "", models.ErrNotFound
	}
	if err := l.confirm(ctx, span, session, models.ActionRevoke, id, revokeGasEstimate); err != nil {
		return "", err
	}

	mined, err := l.transact(ctx, signer, methodRevoke, id)
	if err != nil {
		return "", err
	}
	span.SetAttributes(tracer.String(tracer.AttrTxHash, mined.TxHash.Hex()))
	l.logger.InfoContext(ctx, "certificate revoked",
		"certificate_id", id,
		"tx_hash", mined.TxHash.Hex(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return mined.TxHash.Hex(), nil
}

// Verify reads the certificate from the registry. RPC failures are reported
// as unavailable, never as not found.
func (l *Ledger) Verify(ctx context.Context, id string) models.VerificationResult {
	ctx, span := l.tracer.Start(ctx, tracer.SpanVerify, tracer.String(tracer.AttrCertificateID, id))
	cert, err := l.certificate(ctx, id)
	if err != nil {
		span.End(err)
		l.logger.WarnContext(ctx, "certificate lookup failed", "error", err, "certificate_id", id)
		return models.VerificationResult{Status: models.StatusUnavailable, Error: models.MessageUnavailable}
	}
	var result models.VerificationResult
	if cert == nil {
		result = models.Evaluate(nil, false, requestcontext.Now(ctx))
	} else {
		result = models.Evaluate(cert, !cert.Verified, requestcontext.Now(ctx))
	}
	span.SetAttributes(tracer.String(tracer.AttrStatus, string(result.Status)))
	span.End(nil)
	return result
}

// ListByOwner resolves the recipient's ids and loads each certificate.
func (l *Ledger) ListByOwner(ctx context.Context, address string) (certs []models.Certificate, err error) {
	ctx, span := l.tracer.Start(ctx, tracer.SpanListByOwner, tracer.String(tracer.AttrOwnerAddress, address))
	defer func() { span.End(err) }()

	certs = make([]models.Certificate, 0)
	if !common.IsHexAddress(address) {
		return certs, nil
	}
	ids, err := l.idsByRecipient(ctx, common.HexToAddress(address))
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		cert, err := l.certificate(ctx, id)
		if err != nil {
			return nil, err
		}
		if cert != nil {
			certs = append(certs, *cert)
		}
	}
	span.SetAttributes(tracer.Int64(tracer.AttrResultCount, int64(len(certs))))
	return certs, nil
}

// Metadata derives the document from the on-chain record.
func (l *Ledger) Metadata(ctx context.Context, id string) (doc *models.MetadataDocument, err error) {
	ctx, span := l.tracer.Start(ctx, tracer.SpanMetadata, tracer.String(tracer.AttrCertificateID, id))
	defer func() { span.End(err) }()

	cert, err := l.certificate(ctx, id)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, models.ErrNotFound
	}
	return metadata.Build(*cert), nil
}

func (l *Ledger) certificate(ctx context.Context, id string) (*models.Certificate, error) {
	var out []any
	if err := l.call(ctx, &out, methodGetCertificate, id); err != nil {
		return nil, rpcError(err, "read certificate")
	}
	if len(out) == 0 {
		return nil, nil
	}
	raw := *abi.ConvertType(out[0], new(contractCertificate)).(*contractCertificate)
	return toCertificate(id, raw), nil
}

func (l *Ledger) idsByRecipient(ctx context.Context, recipient common.Address) ([]string, error) {
	var out []any
	if err := l.call(ctx, &out, methodByRecipient, recipient); err != nil {
		return nil, rpcError(err, "list recipient certificates")
	}
	if len(out) == 0 {
		return nil, nil
	}
	ids, ok := out[0].([]string)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "unexpected recipient list encoding")
	}
	return ids, nil
}

// call runs a read-only contract method through the RPC circuit. Caller
// cancellation does not count against the endpoint.
func (l *Ledger) call(ctx context.Context, out *[]any, method string, params ...any) error {
	return l.rpc.Do(func() error {
		return l.contract.Call(&bind.CallOpts{Context: ctx}, out, method, params...)
	}, func(error) bool { return ctx.Err() != nil })
}

// transact sends an accepted mutation and waits for it to be mined. The
// caller's cancellation no longer applies; the mining timeout does.
func (l *Ledger) transact(ctx context.Context, signer *bind.TransactOpts, method string, params ...any) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.mineWait)
	defer cancel()

	signer.Context = ctx
	tx, err := l.contract.Transact(signer, method, params...)
	if err != nil {
		return nil, rpcError(err, "submit "+method)
	}
	receipt, err := bind.WaitMined(ctx, l.backend, tx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "transaction not mined in time")
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "transaction reverted: "+tx.Hash().Hex())
	}
	return receipt, nil
}

func (l *Ledger) confirm(ctx context.Context, span tracer.Span, session models.WalletSession, action models.Action, subject string, gas uint64) error {
	price, err := l.backend.SuggestGasPrice(ctx)
	if err != nil {
		return rpcError(err, "suggest gas price")
	}
	pending := models.Confirmation{
		Action:  action,
		Subject: subject,
		GasFee:  formatFee(price, gas),
		Network: networkName(session.ChainID),
	}
	span.AddEvent(tracer.EventConfirmationRequested, tracer.String("gas_fee", pending.GasFee))
	accepted, err := l.confirmer.Confirm(ctx, pending)
	if err != nil {
		if ctx.Err() != nil {
			return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "operation cancelled before confirmation")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "confirmation failed")
	}
	if !accepted {
		span.AddEvent(tracer.EventConfirmationDenied)
		return models.ErrUserRejected
	}
	span.AddEvent(tracer.EventConfirmationAccepted)
	return nil
}

func rpcError(err error, op string) error {
	if errors.Is(err, circuit.ErrOpen) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "ethereum rpc unavailable")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, op+" timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, op+" failed")
}
