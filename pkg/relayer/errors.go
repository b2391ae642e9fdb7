package relayer

import (
	"fmt"

	"github.com/erc7824/nitrolite/relayer/pkg/sign"
)

var (
	// ErrInvalidKeyFormat is returned by New when the private key does not
	// parse to a valid secp256k1 scalar.
	ErrInvalidKeyFormat = sign.ErrInvalidKeyFormat
	// ErrInvalidProviderURL is returned by Connect when the endpoint is not an
	// absolute http(s) URL with a host.
	ErrInvalidProviderURL = fmt.Errorf("invalid provider url")
	// ErrNoProvider is returned by operations that need the network when the
	// relayer was bound without a provider.
	ErrNoProvider = fmt.Errorf("relayer has no provider")
)
