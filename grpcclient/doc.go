// Package grpcclient provides a fluent builder for secure gRPC client connections with optional
// credential injection from a token source.
//
// It defaults to TLS 1.2+ using system roots to avoid accidental plaintext connections. Optional
// methods let you add credential interceptors, custom CA or mTLS credentials, and extra dial
// options. Any renewclient.TokenSource works as the credential source, including vaultstore and
// oauth2store clients wrapped in a renewclient.Renewer.
//
// # Features
//
//   - Fluent builder for gRPC clients
//   - Bearer credential injection via renewclient.TokenSource
//   - Secure-by-default TLS; optional custom CA and mTLS
//   - Additional dial options via WithDialOptions
//
// # Quick Start
//
//	store := oauth2store.New(ctx,
//	    "https://auth.example.com/oauth/v2/token",
//	    "client-id",
//	    "client-secret",
//	    "openid profile",
//	)
//
//	conn, err := grpcclient.NewBuilder().
//	    WithAddress("server.example.com:9090").
//	    WithTokenSource(store).
//	    WithTLS("/path/to/ca.crt", "", "", "server.example.com").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	client := pb.NewYourServiceClient(conn)
//
// # TLS Behavior
//
// TLS is enabled by default with system CAs and TLS 1.2 minimum. WithTLS allows supplying a custom
// root CA and optional client cert/key for mTLS; both cert and key must be provided together.
package grpcclient
