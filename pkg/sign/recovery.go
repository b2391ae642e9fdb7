package sign

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

type policyKind uint8

const (
	policyAny policyKind = iota
	policyLegacy
	policyEIP155
)

// RecoveryPolicy decides which V values are acceptable and maps them to a
// 0/1 recovery id. The zero value is PolicyAny.
type RecoveryPolicy struct {
	kind    policyKind
	chainID uint64
}

var (
	// PolicyAny accepts 0/1, 27/28 and any EIP-155 value (v >= 35).
	PolicyAny = RecoveryPolicy{kind: policyAny}
	// PolicyLegacy accepts only 27 and 28.
	PolicyLegacy = RecoveryPolicy{kind: policyLegacy}
)

// PolicyEIP155 accepts only chainID*2+35 and chainID*2+36.
func PolicyEIP155(chainID uint64) RecoveryPolicy {
	return RecoveryPolicy{kind: policyEIP155, chainID: chainID}
}

// String returns a short description of the policy.
func (p RecoveryPolicy) String() string {
	switch p.kind {
	case policyLegacy:
		return "legacy"
	case policyEIP155:
		return fmt.Sprintf("eip155(%d)", p.chainID)
	default:
		return "any"
	}
}

// RecoveryID maps v to the 0/1 recovery id under the policy.
func (p RecoveryPolicy) RecoveryID(v uint64) (byte, error) {
	switch p.kind {
	case policyLegacy:
		if v == 27 || v == 28 {
			return byte(v - 27), nil
		}
	case policyEIP155:
		if p.chainID > (math.MaxUint64-36)/2 {
			return 0, fmt.Errorf("%w: chain id %d out of range", ErrRecoveryFailed, p.chainID)
		}
		base := p.chainID*2 + 35
		if v == base || v == base+1 {
			return byte(v - base), nil
		}
	default:
		switch {
		case v == 0 || v == 1:
			return byte(v), nil
		case v == 27 || v == 28:
			return byte(v - 27), nil
		case v >= 35:
			return byte((v - 1) % 2), nil
		}
	}
	return 0, fmt.Errorf("%w: recovery id %d rejected by %s policy", ErrRecoveryFailed, v, p)
}

// Verifier checks signatures under a fixed RecoveryPolicy.
type Verifier struct {
	Policy RecoveryPolicy
}

// Recover returns the address that produced sig over msg.
func (vf Verifier) Recover(sig Signature, msg RecoveryMessage) (common.Address, error) {
	recID, err := vf.Policy.RecoveryID(sig.V)
	if err != nil {
		return common.Address{}, err
	}
	if !ethcrypto.ValidateSignatureValues(recID, sig.R.ToBig(), sig.S.ToBig(), false) {
		return common.Address{}, fmt.Errorf("%w: r or s outside the curve order", ErrRecoveryFailed)
	}

	r32 := sig.R.Bytes32()
	s32 := sig.S.Bytes32()
	raw := make([]byte, 0, signatureLen)
	raw = append(raw, r32[:]...)
	raw = append(raw, s32[:]...)
	raw = append(raw, recID)

	digest := msg.Digest()
	pub, err := ethcrypto.SigToPub(digest[:], raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %w", ErrRecoveryFailed, err)
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

// Verify succeeds when sig over msg recovers to address.
func (vf Verifier) Verify(sig Signature, address common.Address, msg RecoveryMessage) error {
	recovered, err := vf.Recover(sig, msg)
	if err != nil {
		return err
	}
	if recovered != address {
		return fmt.Errorf("%w: recovered %s, expected %s", ErrSignatureMismatch, recovered.Hex(), address.Hex())
	}
	return nil
}

// Recover returns the address that produced sig over msg under PolicyAny.
func Recover(sig Signature, msg RecoveryMessage) (common.Address, error) {
	return Verifier{}.Recover(sig, msg)
}

// Verify checks sig over msg against address under PolicyAny.
func Verify(sig Signature, address common.Address, msg RecoveryMessage) error {
	return Verifier{}.Verify(sig, address, msg)
}
