package sign

import (
	"errors"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	signer := setupSigner(t)
	msg := MakeRecoveryMessage("0xdeadbeef struct hash")
	sig, err := signer.SignMessage(msg)
	require.NoError(t, err)

	t.Run("Matching signer", func(t *testing.T) {
		assert.NoError(t, Verify(sig, signer.Address(), msg))
	})

	t.Run("Other address", func(t *testing.T) {
		otherKey, err := ethcrypto.GenerateKey()
		require.NoError(t, err)
		other := ethcrypto.PubkeyToAddress(otherKey.PublicKey)

		err = Verify(sig, other, msg)
		assert.ErrorIs(t, err, ErrSignatureMismatch)
		assert.ErrorContains(t, err, other.Hex())

		assert.ErrorIs(t, Verify(sig, common.Address{}, msg), ErrSignatureMismatch)
	})

	t.Run("Other message", func(t *testing.T) {
		err := Verify(sig, signer.Address(), MakeRecoveryMessage("something else"))
		assert.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("Data message", func(t *testing.T) {
		data := NewDataMessage([]byte("hello relayer"))
		dataSig, err := signer.SignMessage(data)
		require.NoError(t, err)
		assert.NoError(t, Verify(dataSig, signer.Address(), data))
		assert.ErrorIs(t, Verify(dataSig, signer.Address(), NewHashMessage(ethcrypto.Keccak256Hash([]byte("hello relayer")))), ErrSignatureMismatch)
	})

	t.Run("Raw recovery id", func(t *testing.T) {
		raw := sig
		raw.V -= 27
		assert.NoError(t, Verify(raw, signer.Address(), msg))
	})

	t.Run("EIP-155 recovery id", func(t *testing.T) {
		shifted := sig
		shifted.V = sig.V - 27 + 1*2 + 35
		assert.NoError(t, Verify(shifted, signer.Address(), msg))
	})

	t.Run("Invalid recovery id", func(t *testing.T) {
		for _, v := range []uint64{2, 26, 29, 34} {
			bad := sig
			bad.V = v
			assert.ErrorIs(t, Verify(bad, signer.Address(), msg), ErrRecoveryFailed)
		}
	})

	t.Run("Zero components", func(t *testing.T) {
		zeroR := sig
		zeroR.R.Clear()
		assert.ErrorIs(t, Verify(zeroR, signer.Address(), msg), ErrRecoveryFailed)

		zeroS := sig
		zeroS.S.Clear()
		assert.ErrorIs(t, Verify(zeroS, signer.Address(), msg), ErrRecoveryFailed)
	})

	t.Run("Components above curve order", func(t *testing.T) {
		bad := sig
		bad.R.SetAllOne()
		assert.ErrorIs(t, Verify(bad, signer.Address(), msg), ErrRecoveryFailed)
	})

	t.Run("Tampered signature", func(t *testing.T) {
		tampered := sig
		tampered.S.AddUint64(&tampered.S, 1)
		err := Verify(tampered, signer.Address(), msg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSignatureMismatch) || errors.Is(err, ErrRecoveryFailed))
	})
}

func TestRecoveryPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy RecoveryPolicy
		v      uint64
		want   byte
		ok     bool
	}{
		{"Any raw 0", PolicyAny, 0, 0, true},
		{"Any raw 1", PolicyAny, 1, 1, true},
		{"Any 27", PolicyAny, 27, 0, true},
		{"Any 28", PolicyAny, 28, 1, true},
		{"Any EIP-155 mainnet even", PolicyAny, 37, 0, true},
		{"Any EIP-155 mainnet odd", PolicyAny, 38, 1, true},
		{"Any large", PolicyAny, math.MaxUint64, 0, true},
		{"Any 2", PolicyAny, 2, 0, false},
		{"Any 30", PolicyAny, 30, 0, false},
		{"Legacy 27", PolicyLegacy, 27, 0, true},
		{"Legacy 28", PolicyLegacy, 28, 1, true},
		{"Legacy 0", PolicyLegacy, 0, 0, false},
		{"Legacy 37", PolicyLegacy, 37, 0, false},
		{"EIP-155 chain 1 low", PolicyEIP155(1), 37, 0, true},
		{"EIP-155 chain 1 high", PolicyEIP155(1), 38, 1, true},
		{"EIP-155 chain 1 rejects 27", PolicyEIP155(1), 27, 0, false},
		{"EIP-155 chain 1 rejects other chain", PolicyEIP155(1), 39, 0, false},
		{"EIP-155 chain 137", PolicyEIP155(137), 310, 1, true},
		{"EIP-155 chain out of range", PolicyEIP155(math.MaxUint64), 35, 0, false},
		{"Zero value is any", RecoveryPolicy{}, 28, 1, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.policy.RecoveryID(test.v)
			if !test.ok {
				assert.ErrorIs(t, err, ErrRecoveryFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}

	assert.Equal(t, "any", PolicyAny.String())
	assert.Equal(t, "legacy", PolicyLegacy.String())
	assert.Equal(t, "eip155(5)", PolicyEIP155(5).String())
}

func TestVerifierPolicy(t *testing.T) {
	signer := setupSigner(t)
	msg := HashRecoveryMessage("policy")
	sig, err := signer.SignMessage(msg)
	require.NoError(t, err)

	legacy := Verifier{Policy: PolicyLegacy}
	assert.NoError(t, legacy.Verify(sig, signer.Address(), msg))

	raw := sig
	raw.V -= 27
	assert.ErrorIs(t, legacy.Verify(raw, signer.Address(), msg), ErrRecoveryFailed)

	eip155 := Verifier{Policy: PolicyEIP155(5)}
	shifted := sig
	shifted.V = sig.V - 27 + 5*2 + 35
	assert.NoError(t, eip155.Verify(shifted, signer.Address(), msg))
	assert.ErrorIs(t, eip155.Verify(sig, signer.Address(), msg), ErrRecoveryFailed)

	addr, err := eip155.Recover(shifted, msg)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), addr)
}
