package sign

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// RecoveryMessage is what a signature is computed and verified over: either
// raw bytes or a 32-byte hash.
type RecoveryMessage struct {
	data   []byte
	hash   common.Hash
	isHash bool
}

// NewDataMessage wraps raw bytes. Its digest is the EIP-191 personal-message
// hash of the bytes.
func NewDataMessage(data []byte) RecoveryMessage {
	return RecoveryMessage{data: append([]byte(nil), data...)}
}

// NewHashMessage wraps a precomputed 32-byte hash. Its digest is the hash itself.
func NewHashMessage(hash common.Hash) RecoveryMessage {
	return RecoveryMessage{hash: hash, isHash: true}
}

// MakeRecoveryMessage packs the UTF-8 bytes of hashStruct into a zeroed
// 32-byte hash starting at index 0. Input longer than 32 bytes is truncated
// to its first 32 bytes.
func MakeRecoveryMessage(hashStruct string) RecoveryMessage {
	var h common.Hash
	copy(h[:], hashStruct)
	return NewHashMessage(h)
}

// HashRecoveryMessage builds a hash message from the keccak256 of hashStruct.
// Unlike MakeRecoveryMessage, distinct inputs of any length map to distinct
// hashes.
func HashRecoveryMessage(hashStruct string) RecoveryMessage {
	return NewHashMessage(ethcrypto.Keccak256Hash([]byte(hashStruct)))
}

// IsHash reports whether m is the hash variant.
func (m RecoveryMessage) IsHash() bool { return m.isHash }

// Hash returns the wrapped hash; it is the zero hash for data messages.
func (m RecoveryMessage) Hash() common.Hash { return m.hash }

// Data returns a copy of the wrapped bytes; it is nil for hash messages.
func (m RecoveryMessage) Data() []byte {
	if m.isHash {
		return nil
	}
	return append([]byte(nil), m.data...)
}

// Digest returns the 32 bytes that are actually signed.
func (m RecoveryMessage) Digest() common.Hash {
	if m.isHash {
		return m.hash
	}
	return common.BytesToHash(accounts.TextHash(m.data))
}
