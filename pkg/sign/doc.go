// Package sign builds, serializes and verifies recoverable secp256k1
// signatures and owns the private key used to produce them.
//
// The main types are:
//
//   - Signature: r, s and v components with a canonical hex form
//   - RecoveryMessage: the raw bytes or 32-byte hash a signature covers
//   - EthereumSigner: signer backed by a private key parsed from hex
//   - Verifier: recovery and address comparison under a RecoveryPolicy
//
// # Canonical form
//
// A Signature serializes as 64 lowercase hex digits of r, 64 of s and then v
// in hex, with no prefix or separators:
//
//	sig, err := sign.BuildSignature(rHex, sHex, 28)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sig) // ...1c
//
// ParseSignature reverses it.
//
// # Verification
//
//	msg := sign.MakeRecoveryMessage(hashStruct)
//	if err := sign.Verify(sig, expected, msg); err != nil {
//	    // errors.Is(err, sign.ErrSignatureMismatch) or sign.ErrRecoveryFailed
//	}
//
// Verify accepts any recovery id go-ethereum style tooling emits. Use a
// Verifier with PolicyLegacy or PolicyEIP155 to restrict v.
package sign
