// Package vaultstore provides a HashiCorp Vault implementation of the
// renewclient capability surface.
//
// The Client wraps the official Vault API client and holds a token obtained
// through a pluggable AuthMethod (static token, AppRole, or Kubernetes
// service account). Invalidating the credential clears the token
// client-side; the next credential-requiring call re-authenticates
// transparently, which is exactly the behavior renewclient.Renewer relies on
// to rotate the token before expiry.
//
// # Quick Start
//
//	store, err := vaultstore.NewClient(vaultstore.Config{
//	    Address: "https://vault.example.com:8200",
//	}, vaultstore.AppRoleAuth("", roleID, secretID))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := renewclient.New(ctx, store, renewclient.WithLoggingEnabled())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown()
//
//	// Secret operations stay available on the store while the background
//	// loop keeps its token valid.
//	data, err := store.ReadSecret(ctx, "secret/app/config")
//
// InspectSelf reports the token accessor as the credential ID so logs never
// contain token material. Lifetimes come from the token's creation_ttl and
// ttl as reported by lookup-self; a root-like token with creation_ttl zero
// is reported as never expiring, which disables background renewal.
package vaultstore
