package renewclient

import (
	"context"
	"time"
)

// CredentialInfo describes the currently active store credential as observed
// at inspection time.
type CredentialInfo struct {
	// ID is an opaque identifier for the credential, used for diagnostic
	// logging only. It never contains the credential material itself.
	ID string

	// CreationTTL is the lifetime assigned when the credential was issued.
	// A zero value means the credential never expires.
	CreationTTL time.Duration

	// TTL is the remaining lifetime at inspection time.
	TTL time.Duration
}

// Client is the capability surface the Renewer requires from a secret-store
// credential client. Implementations must be safe for concurrent use: the
// renewal loop and the consumer's own calls share the same client.
//
// vaultstore.Client and oauth2store.Client implement this interface.
type Client interface {
	// InspectSelf returns information about the currently active credential,
	// authenticating first if none is active.
	InspectSelf(ctx context.Context) (*CredentialInfo, error)

	// Invalidate discards the currently held credential so that the next
	// credential-requiring call re-authenticates.
	Invalidate(ctx context.Context) error
}

// TokenSource provides the current credential in bearer form for transport
// decorators (httpclient.BearerTransport, grpcclient interceptors).
type TokenSource interface {
	// Token returns a credential that is valid at the time of the call,
	// authenticating first if necessary.
	Token(ctx context.Context) (string, error)
}
