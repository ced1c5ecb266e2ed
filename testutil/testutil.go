// Package testutil provides helpers for testing code built on go-vaultx.
//
// FakeCredentialClient stands in for a real secret-store client so that
// renewal logic and credential-injecting transports can be exercised without
// network access.
package testutil

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/vperederii/go-vaultx/renewclient"
)

// NewLocalHTTPServer starts an HTTP server bound to IPv4 loopback only.
// The sandbox blocks IPv6 listeners, so force tcp4 to keep tests runnable.
func NewLocalHTTPServer(tb testing.TB, handler http.Handler) *httptest.Server {
	tb.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("failed to create IPv4 listener: %v", err)
	}

	server := httptest.NewUnstartedServer(handler)
	server.Listener = listener
	server.Start()

	return server
}

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// FakeCredentialClient is an in-memory renewclient.Client for tests.
//
// The zero value reports a credential that never expires. Set Info to shape
// what InspectSelf returns, and InspectErr or InvalidateErr to simulate
// store failures. All fields and counters are safe for concurrent use once
// the client is handed to a Renewer.
type FakeCredentialClient struct {
	mu sync.Mutex

	// Info is returned by InspectSelf. The zero value has CreationTTL 0,
	// which renewclient treats as a credential that never expires.
	Info renewclient.CredentialInfo

	// InspectErr, when set, makes InspectSelf fail.
	InspectErr error

	// InvalidateErr, when set, makes Invalidate fail.
	InvalidateErr error

	// Credential is returned by Token. Defaults to "fake-credential".
	Credential string

	inspects    int
	invalidates int
}

var (
	_ renewclient.Client      = (*FakeCredentialClient)(nil)
	_ renewclient.TokenSource = (*FakeCredentialClient)(nil)
)

// InspectSelf returns the configured credential metadata or error.
func (f *FakeCredentialClient) InspectSelf(_ context.Context) (*renewclient.CredentialInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inspects++
	if f.InspectErr != nil {
		return nil, f.InspectErr
	}
	info := f.Info
	return &info, nil
}

// Invalidate records the call and returns the configured error.
func (f *FakeCredentialClient) Invalidate(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.invalidates++
	return f.InvalidateErr
}

// Token returns the configured credential string.
func (f *FakeCredentialClient) Token(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Credential == "" {
		return "fake-credential", nil
	}
	return f.Credential, nil
}

// SetInfo replaces the credential metadata returned by InspectSelf.
func (f *FakeCredentialClient) SetInfo(info renewclient.CredentialInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Info = info
}

// Inspects reports how many times InspectSelf was called.
func (f *FakeCredentialClient) Inspects() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.inspects
}

// Invalidates reports how many times Invalidate was called.
func (f *FakeCredentialClient) Invalidates() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.invalidates
}
