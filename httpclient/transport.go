package httpclient

import (
	"fmt"
	"net/http"

	"github.com/vperederii/go-vaultx/renewclient"
)

// BearerTransport is an http.RoundTripper that automatically adds the
// current store credential as a Bearer token to outgoing HTTP requests.
//
// It wraps an existing transport (typically http.DefaultTransport) and
// injects the Authorization header before each request. The credential comes
// from a renewclient.TokenSource, so a store client kept alive by a
// renewclient.Renewer always injects a live credential.
type BearerTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Source provides the current credential.
	Source renewclient.TokenSource
}

// RoundTrip implements the http.RoundTripper interface.
// It obtains a valid credential and adds it as "Authorization: Bearer <token>"
// to the request headers before delegating to the base transport.
// The credential fetch respects the request context's cancellation and deadline.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Source == nil {
		return nil, fmt.Errorf("httpclient: token source is nil")
	}

	token, err := t.Source.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("httpclient: failed to get credential: %w", err)
	}

	// Clone the request to avoid modifying the original.
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", "Bearer "+token)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(reqClone)
}

// NewBearerTransport creates a BearerTransport with the given credential
// source. The base transport defaults to http.DefaultTransport if nil.
func NewBearerTransport(source renewclient.TokenSource, base http.RoundTripper) *BearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &BearerTransport{
		Base:   base,
		Source: source,
	}
}
