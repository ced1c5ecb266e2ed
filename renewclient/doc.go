// Package renewclient keeps a short-lived secret-store credential
// continuously valid by decorating a credential client with a background
// renewal loop.
//
// A Renewer wraps any Client (see vaultstore and oauth2store for concrete
// implementations) and runs a private self-rescheduling one-shot timer: each
// cycle invalidates the held credential, re-inspects it (forcing the wrapped
// client to re-authenticate), and re-arms the timer at 90% of the freshly
// observed TTL. If a cycle fails, the loop retries at a configurable
// fallback interval instead of giving up, so a transient store outage delays
// renewal but never disables it.
//
// # Features
//
//   - Transparent decoration: all operations of the wrapped client remain
//     available unchanged and are never blocked by the renewal loop
//   - Self-rescheduling one-shot timer driven by the observed TTL
//   - Self-healing fallback scheduling on store failures
//   - Never-expiring credentials (creation TTL zero) disable renewal
//   - Idempotent, race-safe Shutdown
//   - Optional logging (WithLogger, WithLoggingEnabled)
//
// # Quick Start
//
//	store, err := vaultstore.NewClient(vaultstore.Config{
//	    Address: "https://vault.example.com:8200",
//	}, vaultstore.AppRoleAuth("approle", roleID, secretID))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := renewclient.New(ctx, store,
//	    renewclient.WithLoggingEnabled(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Shutdown()
//
//	// Use the decorated client exactly like the underlying one; the
//	// credential is kept valid in the background.
//	info, err := client.InspectSelf(ctx)
//
// # Notes
//
//   - New runs the first renewal cycle synchronously, so the Renewer is
//     never observed mid-construction without renewal state.
//   - Renewal failures are logged, never propagated; foreground call errors
//     propagate unchanged.
//   - The wrapped client must be safe for concurrent use by the consumer and
//     the renewal loop.
package renewclient
