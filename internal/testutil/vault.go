package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MockVaultServer is a minimal in-process Vault lookalike covering the
// surface vaultstore exercises: auth-method logins, token lookup-self, and
// KV v1 secret routes. Every minted token is tracked so tests can assert
// how often re-authentication happened.
type MockVaultServer struct {
	URL    string
	server *httptest.Server

	mu          sync.Mutex
	logins      int
	lookups     int
	minted      []string
	creationTTL int64
	ttl         int64
	rejectAll   bool
	secrets     map[string]map[string]interface{}
}

// NewMockVaultServer starts a mock Vault server issuing tokens with the
// given creation TTL and remaining TTL, in seconds.
func NewMockVaultServer(tb testing.TB, creationTTL, ttl int64) *MockVaultServer {
	tb.Helper()

	m := &MockVaultServer{
		creationTTL: creationTTL,
		ttl:         ttl,
		secrets:     map[string]map[string]interface{}{},
	}

	m.server = NewLocalHTTPServer(tb, http.HandlerFunc(m.handle))
	m.URL = m.server.URL
	tb.Cleanup(m.server.Close)

	return m
}

// Close shuts the underlying HTTP server down.
func (m *MockVaultServer) Close() { m.server.Close() }

// Logins returns how many auth-method logins have been served.
func (m *MockVaultServer) Logins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logins
}

// Lookups returns how many token lookup-self calls have been served.
func (m *MockVaultServer) Lookups() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookups
}

// CurrentToken returns the most recently minted token, or "" if none.
func (m *MockVaultServer) CurrentToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.minted) == 0 {
		return ""
	}
	return m.minted[len(m.minted)-1]
}

// SetTTL changes the lifetimes reported for subsequently served lookups.
func (m *MockVaultServer) SetTTL(creationTTL, ttl int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creationTTL = creationTTL
	m.ttl = ttl
}

// SetUnavailable makes every route fail with 503, simulating an outage.
func (m *MockVaultServer) SetUnavailable(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectAll = down
}

// PutSecret seeds a KV v1 secret at path (without the "secret/" prefix).
func (m *MockVaultServer) PutSecret(path string, data map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[path] = data
}

func (m *MockVaultServer) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	if m.rejectAll {
		m.mu.Unlock()
		writeVaultError(w, http.StatusServiceUnavailable, "vault is sealed")
		return
	}
	m.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v1/")

	switch {
	case strings.HasPrefix(path, "auth/") && strings.HasSuffix(path, "/login"):
		m.handleLogin(w)
	case path == "auth/token/lookup-self":
		m.handleLookupSelf(w, r)
	case strings.HasPrefix(path, "secret/"):
		m.handleSecret(w, r, strings.TrimPrefix(path, "secret/"))
	default:
		writeVaultError(w, http.StatusNotFound, "unsupported path: "+path)
	}
}

func (m *MockVaultServer) handleLogin(w http.ResponseWriter) {
	m.mu.Lock()
	m.logins++
	token := fmt.Sprintf("hvs.mock-token-%d", m.logins)
	m.minted = append(m.minted, token)
	ttl := m.ttl
	m.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"auth": map[string]interface{}{
			"client_token":   token,
			"accessor":       "accessor-" + token,
			"lease_duration": ttl,
			"renewable":      true,
		},
	})
}

func (m *MockVaultServer) handleLookupSelf(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Vault-Token")
	if !m.validToken(token) {
		writeVaultError(w, http.StatusForbidden, "permission denied")
		return
	}

	m.mu.Lock()
	m.lookups++
	creationTTL, ttl := m.creationTTL, m.ttl
	m.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"data": map[string]interface{}{
			"accessor":     "accessor-" + token,
			"creation_ttl": creationTTL,
			"ttl":          ttl,
			"renewable":    true,
		},
	})
}

func (m *MockVaultServer) handleSecret(w http.ResponseWriter, r *http.Request, path string) {
	if !m.validToken(r.Header.Get("X-Vault-Token")) {
		writeVaultError(w, http.StatusForbidden, "permission denied")
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		data, ok := m.secrets[path]
		if !ok {
			writeVaultError(w, http.StatusNotFound, "")
			return
		}
		writeJSON(w, map[string]interface{}{"data": data})
	case http.MethodPut, http.MethodPost:
		var data map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			writeVaultError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		m.secrets[path] = data
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		delete(m.secrets, path)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeVaultError(w, http.StatusMethodNotAllowed, "")
	}
}

// validToken accepts static tokens (anything a test set directly) as well as
// minted ones; only an empty token is rejected, mirroring how a real Vault
// rejects unauthenticated calls.
func (m *MockVaultServer) validToken(token string) bool {
	return token != ""
}

func writeJSON(w http.ResponseWriter, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func writeVaultError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	errs := []string{}
	if msg != "" {
		errs = append(errs, msg)
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"errors": errs})
}
