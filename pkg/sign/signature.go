package sign

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

const (
	// scalarHexLen is the fixed width of r and s in the canonical form.
	scalarHexLen = 64
	// signatureLen is the length of the byte form: r (32) || s (32) || v (1).
	signatureLen = 65
)

// Signature is a recoverable ECDSA signature split into its components.
// R and S are unsigned 256-bit integers; V is the recovery id exactly as the
// caller supplied it (0/1, 27/28 or an EIP-155 value). Signature is a value
// type and comparable with ==.
type Signature struct {
	R uint256.Int
	S uint256.Int
	V uint64
}

// BuildSignature assembles a signature from hex-encoded r and s (an optional
// 0x prefix is accepted) and a recovery id. V is not range checked here; use a
// RecoveryPolicy when the caller needs that.
func BuildSignature(rHex, sHex string, v uint64) (Signature, error) {
	r, err := parseScalar(rHex)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: r: %w", ErrInvalidScalarEncoding, err)
	}
	s, err := parseScalar(sHex)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: s: %w", ErrInvalidScalarEncoding, err)
	}
	return Signature{R: *r, S: *s, V: v}, nil
}

// ParseSignature is the inverse of Signature.String: 64 hex digits of r,
// 64 hex digits of s, then v in hex.
func ParseSignature(str string) (Signature, error) {
	str = trimHexPrefix(str)
	if len(str) <= 2*scalarHexLen {
		return Signature{}, fmt.Errorf("%w: canonical signature too short: %d hex digits", ErrInvalidScalarEncoding, len(str))
	}

	v, err := strconv.ParseUint(str[2*scalarHexLen:], 16, 64)
	if err != nil {
		return Signature{}, fmt.Errorf("%w: v: %w", ErrInvalidScalarEncoding, err)
	}
	return BuildSignature(str[:scalarHexLen], str[scalarHexLen:2*scalarHexLen], v)
}

// SignatureFromBytes splits a 65-byte r || s || v signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != signatureLen {
		return Signature{}, fmt.Errorf("%w: invalid signature length: got %d, want %d", ErrInvalidScalarEncoding, len(b), signatureLen)
	}

	var sig Signature
	sig.R.SetBytes32(b[:32])
	sig.S.SetBytes32(b[32:64])
	sig.V = uint64(b[64])
	return sig, nil
}

// Serialize returns the canonical form of sig. It is equivalent to sig.String().
func Serialize(sig Signature) string {
	return sig.String()
}

// String renders r and s as 64 lowercase hex digits each followed by v in
// lowercase hex, with no prefix and no separators.
func (s Signature) String() string {
	r32 := s.R.Bytes32()
	s32 := s.S.Bytes32()

	var sb strings.Builder
	sb.Grow(2*scalarHexLen + 16)
	sb.WriteString(hex.EncodeToString(r32[:]))
	sb.WriteString(hex.EncodeToString(s32[:]))
	sb.WriteString(strconv.FormatUint(s.V, 16))
	return sb.String()
}

// Bytes returns the 65-byte r || s || v form. It fails when V does not fit in
// a single byte, which is the case for EIP-155 recovery ids of most chains.
func (s Signature) Bytes() ([]byte, error) {
	if s.V > 0xff {
		return nil, fmt.Errorf("%w: v %d does not fit in one byte", ErrInvalidScalarEncoding, s.V)
	}
	r32 := s.R.Bytes32()
	s32 := s.S.Bytes32()

	out := make([]byte, 0, signatureLen)
	out = append(out, r32[:]...)
	out = append(out, s32[:]...)
	return append(out, byte(s.V)), nil
}

// MarshalJSON encodes the signature as its canonical string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	sig, err := ParseSignature(str)
	if err != nil {
		return err
	}
	*s = sig
	return nil
}

func parseScalar(str string) (*uint256.Int, error) {
	str = trimHexPrefix(str)
	if str == "" {
		return nil, fmt.Errorf("empty hex string")
	}
	for i := 0; i < len(str); i++ {
		if !isHexDigit(str[i]) {
			return nil, fmt.Errorf("invalid hex character %q at position %d", str[i], i)
		}
	}

	b, ok := new(big.Int).SetString(str, 16)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q as base-16 integer", str)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("value exceeds 256 bits")
	}
	return v, nil
}

func trimHexPrefix(str string) string {
	if len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X') {
		return str[2:]
	}
	return str
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
