package sign

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var _ Signer = (*EthereumSigner)(nil)

// EthereumSigner signs with a secp256k1 private key. The key never leaves the
// value: there is no accessor for it and its formatted forms only show the
// address.
type EthereumSigner struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewEthereumSigner creates a signer from a hex-encoded private key with or
// without a 0x prefix. Malformed hex, a wrong length and a zero or
// out-of-range scalar are all reported as ErrInvalidKeyFormat.
func NewEthereumSigner(privateKeyHex string) (*EthereumSigner, error) {
	key, err := ethcrypto.HexToECDSA(trimHexPrefix(privateKeyHex))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyFormat, err)
	}
	return &EthereumSigner{
		privateKey: key,
		address:    ethcrypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

func (s *EthereumSigner) Address() common.Address { return s.address }

func (s *EthereumSigner) PublicKey() *ecdsa.PublicKey { return &s.privateKey.PublicKey }

// SignTx signs a caller-built transaction for chainID using the latest
// signer scheme go-ethereum supports for that chain.
func (s *EthereumSigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if chainID == nil {
		return nil, fmt.Errorf("chain id is nil")
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.privateKey)
}

// SignHash signs hash and returns a signature with V adjusted from 0/1 to
// 27/28 for ecrecover compatibility.
func (s *EthereumSigner) SignHash(hash common.Hash) (Signature, error) {
	raw, err := ethcrypto.Sign(hash[:], s.privateKey)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to sign hash: %w", err)
	}
	if raw[ethcrypto.RecoveryIDOffset] < 27 {
		raw[ethcrypto.RecoveryIDOffset] += 27
	}
	return SignatureFromBytes(raw)
}

// SignMessage signs the digest of msg.
func (s *EthereumSigner) SignMessage(msg RecoveryMessage) (Signature, error) {
	return s.SignHash(msg.Digest())
}

func (s *EthereumSigner) String() string { return "EthereumSigner(" + s.address.Hex() + ")" }

func (s *EthereumSigner) GoString() string { return s.String() }
