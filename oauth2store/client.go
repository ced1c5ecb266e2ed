package oauth2store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/vperederii/go-vaultx/internal/claims"
	"github.com/vperederii/go-vaultx/renewclient"
)

// Compile-time checks that Client satisfies the renewclient capability
// surfaces.
var (
	_ renewclient.Client      = (*Client)(nil)
	_ renewclient.TokenSource = (*Client)(nil)
)

// Client is a credential client backed by the OAuth2 client-credentials
// flow. It caches the access token under a read-write lock with
// double-checked locking and re-fetches on demand, so invalidating the
// credential simply drops the cache and the next credential-requiring call
// re-authenticates.
//
// Client is safe for concurrent use.
type Client struct {
	config *clientcredentials.Config
	ctx    context.Context // fallback context for token fetches

	// leeway shortens the usable window of a cached token so a token about
	// to expire is not handed out mid-request.
	leeway time.Duration

	mu        sync.RWMutex
	token     *oauth2.Token
	fetchedAt time.Time
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithExpiryLeeway sets the safety window before expiry during which a
// cached token is treated as already invalid. Default is one minute.
func WithExpiryLeeway(d time.Duration) Option {
	return func(c *Client) {
		c.leeway = d
	}
}

// New creates an OAuth2-backed credential client using the client
// credentials flow.
//
// Parameters:
//   - ctx: Context for token requests; its cancellation is stripped so a
//     caller's request context cannot kill background renewal fetches
//   - tokenURL: OAuth2 token endpoint (e.g., "https://auth.example.com/oauth/v2/token")
//   - clientID: OAuth2 client identifier
//   - clientSecret: OAuth2 client secret
//   - scopes: Space-separated list of OAuth2 scopes
func New(ctx context.Context, tokenURL, clientID, clientSecret, scopes string, opts ...Option) *Client {
	if ctx == nil {
		ctx = context.Background()
	} else {
		ctx = context.WithoutCancel(ctx)
	}

	c := &Client{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       strings.Fields(scopes),
		},
		ctx:    ctx,
		leeway: time.Minute,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns a valid access token, fetching or refreshing if necessary.
// It implements renewclient.TokenSource.
func (c *Client) Token(ctx context.Context) (string, error) {
	token, _, err := c.current(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// InspectSelf reports the current credential's identity and lifetime,
// fetching a token first if none is cached. A token whose expiry cannot be
// determined (neither reported by the endpoint nor carried in JWT claims) is
// reported as never expiring.
func (c *Client) InspectSelf(ctx context.Context) (*renewclient.CredentialInfo, error) {
	token, fetchedAt, err := c.current(ctx)
	if err != nil {
		return nil, err
	}

	info := &renewclient.CredentialInfo{ID: fingerprint(token.AccessToken)}

	expiry := token.Expiry
	issuedAt := fetchedAt
	if lt, err := claims.Parse(token.AccessToken); err == nil {
		if lt.ID != "" {
			info.ID = lt.ID
		}
		if expiry.IsZero() {
			expiry = lt.Expiry
		}
		if !lt.IssuedAt.IsZero() {
			issuedAt = lt.IssuedAt
		}
	}

	if expiry.IsZero() {
		// Unknown lifetime: treat as non-expiring rather than guessing.
		return info, nil
	}

	info.CreationTTL = expiry.Sub(issuedAt)
	info.TTL = time.Until(expiry)
	return info, nil
}

// Invalidate drops the cached token so the next credential-requiring call
// fetches a fresh one. It never fails.
func (c *Client) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
	c.fetchedAt = time.Time{}
	return nil
}

// current returns a usable token and the time it was obtained, fetching a
// new one when the cache is empty or inside the expiry leeway. Uses
// double-checked locking to keep the fast path on the read lock.
func (c *Client) current(ctx context.Context) (*oauth2.Token, time.Time, error) {
	if ctx == nil {
		ctx = c.ctx
	}

	c.mu.RLock()
	if c.tokenUsable() {
		token, fetchedAt := c.token, c.fetchedAt
		c.mu.RUnlock()
		return token, fetchedAt, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if c.tokenUsable() {
		return c.token, c.fetchedAt, nil
	}

	token, err := c.config.Token(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("oauth2store: failed to fetch token: %w", err)
	}

	c.token = token
	c.fetchedAt = time.Now()
	return token, c.fetchedAt, nil
}

// tokenUsable reports whether the cached token is still usable with the
// leeway window applied. Callers must hold at least the read lock.
func (c *Client) tokenUsable() bool {
	if c.token == nil {
		return false
	}
	if !c.token.Expiry.IsZero() && time.Until(c.token.Expiry) <= c.leeway {
		return false
	}
	return c.token.Valid()
}

// fingerprint derives a short non-reversible identifier from the token
// material so opaque credentials can be named in logs.
func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "sha256:" + hex.EncodeToString(sum[:4])
}
