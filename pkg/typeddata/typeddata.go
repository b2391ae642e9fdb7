// Package typeddata loads EIP-712 typed data and turns it into the recovery
// message a relayer signs or verifies.
package typeddata

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github.com/erc7824/nitrolite/relayer/pkg/sign"
)

// ErrInvalidTypedData is returned when the document does not describe a
// hashable EIP-712 structure.
var ErrInvalidTypedData = errors.New("invalid typed data")

// Load decodes a typed-data JSON document ({"types", "primaryType",
// "domain", "message"}) and checks that its primary type is declared.
func Load(r io.Reader) (*apitypes.TypedData, error) {
	var td apitypes.TypedData
	if err := json.NewDecoder(r).Decode(&td); err != nil {
		return nil, errors.Wrap(err, "failed to decode typed data")
	}

	if td.PrimaryType == "" {
		return nil, errors.Wrap(ErrInvalidTypedData, "primaryType is empty")
	}
	if _, ok := td.Types[td.PrimaryType]; !ok {
		return nil, errors.Wrapf(ErrInvalidTypedData, "primary type %q is not declared", td.PrimaryType)
	}
	if _, ok := td.Types["EIP712Domain"]; !ok {
		return nil, errors.Wrap(ErrInvalidTypedData, "EIP712Domain type is not declared")
	}
	return &td, nil
}

// LoadFile reads and decodes the typed-data document at path.
func LoadFile(path string) (*apitypes.TypedData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open typed data file %s", path)
	}
	defer f.Close()

	return Load(f)
}

// StructHash returns hashStruct of the primary message.
func StructHash(td *apitypes.TypedData) (common.Hash, error) {
	h, err := td.HashStruct(td.PrimaryType, td.Message)
	if err != nil {
		return common.Hash{}, errors.Wrapf(ErrInvalidTypedData, "hash %s: %v", td.PrimaryType, err)
	}
	return common.BytesToHash(h), nil
}

// Message returns the EIP-712 digest of td as a hash recovery message.
func Message(td *apitypes.TypedData) (sign.RecoveryMessage, error) {
	digest, _, err := apitypes.TypedDataAndHash(*td)
	if err != nil {
		return sign.RecoveryMessage{}, errors.Wrapf(ErrInvalidTypedData, "digest: %v", err)
	}
	return sign.NewHashMessage(common.BytesToHash(digest)), nil
}
