package relayer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Provider is a handle to a JSON-RPC endpoint. Creating one performs no
// network I/O; requests are sent only when a caller uses the client.
type Provider struct {
	endpoint *url.URL
	rpc      *rpc.Client
	eth      *ethclient.Client
}

// Connect validates rpcURL and builds a provider for it. The URL must be
// absolute with an http or https scheme and a host. Options are passed to the
// underlying go-ethereum RPC client (e.g. rpc.WithHTTPClient, rpc.WithHeader).
func Connect(rpcURL string, opts ...rpc.ClientOption) (*Provider, error) {
	u, err := url.Parse(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProviderURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no scheme or host", ErrInvalidProviderURL, u.Redacted())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidProviderURL, u.Scheme)
	}

	// HTTP clients are created without a round trip, so the context only
	// bounds construction.
	client, err := rpc.DialOptions(context.Background(), u.String(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProviderURL, err)
	}

	return &Provider{
		endpoint: u,
		rpc:      client,
		eth:      ethclient.NewClient(client),
	}, nil
}

// URL returns the endpoint with any password redacted.
func (p *Provider) URL() string { return p.endpoint.Redacted() }

// RPC returns the raw JSON-RPC client.
func (p *Provider) RPC() *rpc.Client { return p.rpc }

// Client returns an Ethereum API client over the provider.
func (p *Provider) Client() *ethclient.Client { return p.eth }

// Close releases the underlying client. The provider must not be used afterwards.
func (p *Provider) Close() { p.rpc.Close() }
