// Package oauth2store provides an OAuth2 client-credentials implementation
// of the renewclient capability surface.
//
// The Client caches its access token, refreshes it before expiry on
// foreground use, and exposes InspectSelf/Invalidate so a
// renewclient.Renewer can drive proactive renewal in the background. Token
// lifetimes come from the endpoint's expires_in when present, falling back
// to the exp/iat claims of JWT access tokens; a token with no determinable
// expiry is reported as never expiring, which disables renewal for it.
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
//	client, err := renewclient.New(ctx, store)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown()
//
//	httpc := &http.Client{Transport: httpclient.NewBearerTransport(store, nil)}
//
// Client is safe for concurrent use and uses double-checked locking.
package oauth2store
