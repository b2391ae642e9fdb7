package relayer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/erc7824/nitrolite/relayer/pkg/log"
	"github.com/erc7824/nitrolite/relayer/pkg/sign"
)

// Relayer binds a private-key signer to a provider. It is immutable once
// built; binding another key or provider means building another Relayer.
// A Relayer is safe for concurrent use.
type Relayer struct {
	provider *Provider
	signer   *sign.EthereumSigner
	verifier sign.Verifier
	logger   log.Logger
	metrics  *Metrics
}

// Option configures a Relayer.
type Option func(*Relayer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(r *Relayer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics the relayer records to.
func WithMetrics(metrics *Metrics) Option {
	return func(r *Relayer) { r.metrics = metrics }
}

// WithRecoveryPolicy restricts the recovery ids Verify accepts.
func WithRecoveryPolicy(policy sign.RecoveryPolicy) Option {
	return func(r *Relayer) { r.verifier = sign.Verifier{Policy: policy} }
}

// New parses privateKey and pairs the resulting signer with provider. Key
// parse failures are reported as ErrInvalidKeyFormat. The provider is not
// inspected and may be nil; no network I/O happens here.
func New(privateKey string, provider *Provider, opts ...Option) (*Relayer, error) {
	signer, err := sign.NewEthereumSigner(privateKey)
	if err != nil {
		return nil, err
	}

	r := &Relayer{
		provider: provider,
		signer:   signer,
		logger:   log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithKV("signer", signer.Address().Hex())

	if provider != nil {
		r.logger.Debug("signer bound to provider", "url", provider.URL())
	} else {
		r.logger.Debug("signer bound without provider")
	}
	return r, nil
}

// Address returns the address derived from the bound private key.
func (r *Relayer) Address() common.Address { return r.signer.Address() }

// Provider returns the bound provider, which may be nil.
func (r *Relayer) Provider() *Provider { return r.provider }

// Signer returns the bound signer.
func (r *Relayer) Signer() sign.Signer { return r.signer }

// SignHash signs a 32-byte digest with V in {27, 28}.
func (r *Relayer) SignHash(hash common.Hash) (sign.Signature, error) {
	sig, err := r.signer.SignHash(hash)
	if err != nil {
		r.logger.Error("failed to sign hash", "error", err)
		return sign.Signature{}, err
	}
	r.metrics.recordSignature()
	return sig, nil
}

// SignMessage signs the digest of msg.
func (r *Relayer) SignMessage(msg sign.RecoveryMessage) (sign.Signature, error) {
	return r.SignHash(msg.Digest())
}

// Verify checks that sig over msg was produced by the bound key.
func (r *Relayer) Verify(sig sign.Signature, msg sign.RecoveryMessage) error {
	err := r.verifier.Verify(sig, r.Address(), msg)
	r.metrics.recordVerification(err)
	if err != nil {
		r.logger.Debug("signature rejected", "signature", sig.String(), "error", err)
	}
	return err
}

// ChainID asks the provider for its chain id.
func (r *Relayer) ChainID(ctx context.Context) (*big.Int, error) {
	if r.provider == nil {
		return nil, ErrNoProvider
	}
	chainID, err := r.provider.Client().ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain id from %s: %w", r.provider.URL(), err)
	}
	return chainID, nil
}

// SignTx signs a caller-built transaction for the provider's chain. It does
// not fill in nonce, gas or fees and does not submit anything. A logger
// attached to ctx takes precedence over the relayer's own.
func (r *Relayer) SignTx(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
	logger := log.FromContextOr(ctx, r.logger)

	chainID, err := r.ChainID(ctx)
	if err != nil {
		logger.Warn("chain id unavailable", "error", err)
		return nil, err
	}
	signed, err := r.signer.SignTx(tx, chainID)
	if err != nil {
		logger.Error("failed to sign transaction", "chainID", chainID, "error", err)
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	r.metrics.recordTransaction()
	logger.Debug("transaction signed", "chainID", chainID, "hash", signed.Hash().Hex())
	return signed, nil
}
