// Package httpclient offers HTTP client construction helpers with automatic
// store-credential injection and TLS/mTLS options.
//
// It provides a fluent Builder that can create an http.Client with automatic
// Bearer injection from any renewclient.TokenSource (a vaultstore or
// oauth2store client, typically decorated by a renewclient.Renewer),
// configurable TLS (custom CA, mTLS, insecure for tests), timeouts, base
// transports, and redirect handling. BearerTransport can wrap any
// RoundTripper.
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
//	client, err := httpclient.NewBuilder().
//	    WithTokenSource(store).
//	    WithTLS("/path/to/ca.crt", "", "").
//	    WithTimeout(60 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Get("https://api.example.com/data")
//
// # Manual Transport Wrapping
//
//	transport := httpclient.NewBearerTransport(store, nil)
//	client := &http.Client{Transport: transport}
//
// All components are safe for concurrent use if the provided TokenSource is.
package httpclient
