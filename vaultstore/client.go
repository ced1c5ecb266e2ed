package vaultstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/vperederii/go-vaultx/renewclient"
)

// Compile-time checks that Client satisfies the renewclient capability
// surfaces.
var (
	_ renewclient.Client      = (*Client)(nil)
	_ renewclient.TokenSource = (*Client)(nil)
)

// ErrNoAuthMethod is returned when a credential-requiring call is made
// without a held token and no auth method was configured.
var ErrNoAuthMethod = errors.New("vaultstore: no auth method configured")

// ErrSecretNotFound is returned when a secret does not exist at the
// requested path.
var ErrSecretNotFound = errors.New("vaultstore: secret not found")

// Config holds configuration for creating a Vault-backed credential client.
type Config struct {
	// Address is the Vault server address (e.g., "https://vault.example.com:8200").
	Address string

	// Timeout bounds each Vault request. The API client default applies
	// when zero.
	Timeout time.Duration

	// CACert is a path to a CA certificate for server verification.
	CACert string

	// TLSSkipVerify disables TLS verification (not recommended for
	// production).
	TLSSkipVerify bool
}

// Client is a credential client backed by HashiCorp Vault. It holds a Vault
// token obtained through the configured AuthMethod, re-authenticating
// transparently whenever the token has been invalidated.
//
// Client is safe for concurrent use by a consumer and a renewclient.Renewer.
type Client struct {
	api  *api.Client
	auth AuthMethod

	// authMu serializes re-authentication so concurrent calls against an
	// invalidated token perform a single login.
	authMu sync.Mutex
}

// NewClient creates a Vault-backed credential client. The auth method is
// invoked lazily on the first credential-requiring call and again after
// every invalidation; pass TokenAuth to use a pre-issued token.
func NewClient(cfg Config, auth AuthMethod) (*Client, error) {
	if cfg.Address == "" {
		return nil, errors.New("vaultstore: address is required")
	}

	config := api.DefaultConfig()
	config.Address = cfg.Address
	if cfg.Timeout > 0 {
		config.Timeout = cfg.Timeout
	}

	if cfg.CACert != "" || cfg.TLSSkipVerify {
		if err := config.ConfigureTLS(&api.TLSConfig{
			CACert:   cfg.CACert,
			Insecure: cfg.TLSSkipVerify,
		}); err != nil {
			return nil, fmt.Errorf("vaultstore: failed to configure TLS: %w", err)
		}
	}

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("vaultstore: failed to create API client: %w", err)
	}

	return &Client{api: client, auth: auth}, nil
}

// API exposes the underlying Vault API client for operations this package
// does not wrap. Callers must not clear or replace its token; use
// Invalidate instead.
func (c *Client) API() *api.Client {
	return c.api
}

// InspectSelf returns the identity and lifetime of the currently held
// token, authenticating first if none is held. The reported ID is the token
// accessor, never the token itself.
func (c *Client) InspectSelf(ctx context.Context) (*renewclient.CredentialInfo, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	secret, err := c.api.Auth().Token().LookupSelfWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("vaultstore: token lookup failed: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return nil, errors.New("vaultstore: token lookup returned no data")
	}

	creationTTL, err := secondsField(secret.Data, "creation_ttl")
	if err != nil {
		return nil, err
	}
	ttl, err := secondsField(secret.Data, "ttl")
	if err != nil {
		return nil, err
	}

	accessor, _ := secret.Data["accessor"].(string)

	return &renewclient.CredentialInfo{
		ID:          accessor,
		CreationTTL: creationTTL,
		TTL:         ttl,
	}, nil
}

// Invalidate discards the held token client-side so the next
// credential-requiring call re-authenticates. The token is not revoked on
// the server; it simply ages out there.
func (c *Client) Invalidate(context.Context) error {
	c.api.ClearToken()
	return nil
}

// Token returns the current Vault token, authenticating first if none is
// held. It implements renewclient.TokenSource.
func (c *Client) Token(ctx context.Context) (string, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return "", err
	}
	return c.api.Token(), nil
}

// ReadSecret reads the secret at path, authenticating first if needed.
// Returns ErrSecretNotFound when nothing exists at the path.
func (c *Client) ReadSecret(ctx context.Context, path string) (map[string]interface{}, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	secret, err := c.api.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("vaultstore: read %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, path)
	}
	return secret.Data, nil
}

// WriteSecret writes data to path, authenticating first if needed.
func (c *Client) WriteSecret(ctx context.Context, path string, data map[string]interface{}) error {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return err
	}

	if _, err := c.api.Logical().WriteWithContext(ctx, path, data); err != nil {
		return fmt.Errorf("vaultstore: write %s: %w", path, err)
	}
	return nil
}

// DeleteSecret deletes the secret at path, authenticating first if needed.
func (c *Client) DeleteSecret(ctx context.Context, path string) error {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return err
	}

	if _, err := c.api.Logical().DeleteWithContext(ctx, path); err != nil {
		return fmt.Errorf("vaultstore: delete %s: %w", path, err)
	}
	return nil
}

// ensureAuthenticated performs a login when no token is held. Logins are
// serialized so racing callers after an invalidation produce one
// authentication, not many.
func (c *Client) ensureAuthenticated(ctx context.Context) error {
	if c.api.Token() != "" {
		return nil
	}

	c.authMu.Lock()
	defer c.authMu.Unlock()

	if c.api.Token() != "" {
		return nil
	}
	if c.auth == nil {
		return ErrNoAuthMethod
	}
	if err := c.auth(ctx, c.api); err != nil {
		return fmt.Errorf("vaultstore: authentication failed: %w", err)
	}
	return nil
}

// secondsField reads a numeric field expressed in seconds from lookup data.
// The Vault API decodes numbers as json.Number.
func secondsField(data map[string]interface{}, key string) (time.Duration, error) {
	raw, ok := data[key]
	if !ok {
		return 0, fmt.Errorf("vaultstore: token lookup missing %q", key)
	}

	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("vaultstore: invalid %q in token lookup: %w", key, err)
		}
		return time.Duration(n) * time.Second, nil
	case float64:
		return time.Duration(v) * time.Second, nil
	default:
		return 0, fmt.Errorf("vaultstore: unexpected type %T for %q in token lookup", raw, key)
	}
}
