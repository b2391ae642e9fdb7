package sign

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Signer produces recoverable signatures over 32-byte digests.
type Signer interface {
	Address() common.Address                      // Address derived from the signer's public key.
	PublicKey() *ecdsa.PublicKey                  // Public key associated with this signer.
	SignHash(hash common.Hash) (Signature, error) // SignHash signs a precomputed digest.
}
