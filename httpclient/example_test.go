package httpclient_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vperederii/go-vaultx/httpclient"
	"github.com/vperederii/go-vaultx/oauth2store"
)

// Example demonstrates basic HTTP client usage with a credential store.
func Example() {
	ctx := context.Background()

	// Create credential store
	store := oauth2store.New(
		ctx,
		"https://auth.example.com/oauth/v2/token",
		"client-id",
		"client-secret",
		"openid profile",
	)

	// Create HTTP client
	client := httpclient.NewHTTPClient(store)

	fmt.Printf("HTTP client created with timeout: %v\n", client.Timeout)
	// Output: HTTP client created with timeout: 30s
}

// ExampleNewHTTPClient demonstrates the simple way to create an HTTP client.
func ExampleNewHTTPClient() {
	ctx := context.Background()

	store := oauth2store.New(
		ctx,
		"https://auth.example.com/oauth/v2/token",
		"client-id",
		"client-secret",
		"openid",
	)

	client := httpclient.NewHTTPClient(store)

	fmt.Printf("Client timeout: %v\n", client.Timeout)
	// Output: Client timeout: 30s
}

// ExampleNewBuilder demonstrates using the builder pattern for HTTP clients.
func ExampleNewBuilder() {
	ctx := context.Background()

	store := oauth2store.New(ctx,
		"https://auth.example.com/oauth/v2/token", "client-id", "secret", "openid")

	client, err := httpclient.NewBuilder().
		WithTokenSource(store).
		WithTimeout(60 * time.Second).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Client configured with timeout: %v\n", client.Timeout)
	// Output: Client configured with timeout: 1m0s
}

// ExampleBuilder_WithTLS demonstrates TLS configuration.
func ExampleBuilder_WithTLS() {
	client, err := httpclient.NewBuilder().
		WithTLS(
			"/path/to/ca.crt",     // CA certificate
			"/path/to/client.crt", // Client certificate (optional)
			"/path/to/client.key", // Client key (optional)
		).
		Build()
	if err != nil {
		// In this example, files don't exist, so we expect an error
		fmt.Println("TLS configuration attempted")
		return
	}

	fmt.Println("TLS configured")
	_ = client
	// Output: TLS configuration attempted
}

// ExampleBuilder_WithTimeout demonstrates timeout configuration.
func ExampleBuilder_WithTimeout() {
	client, err := httpclient.NewBuilder().
		WithTimeout(45 * time.Second).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Timeout: %v\n", client.Timeout)
	// Output: Timeout: 45s
}

// ExampleBuilder_WithoutRedirects demonstrates disabling redirect following.
func ExampleBuilder_WithoutRedirects() {
	client, err := httpclient.NewBuilder().
		WithoutRedirects().
		Build()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Redirects disabled")
	_ = client
	// Output: Redirects disabled
}

// ExampleNewBearerTransport demonstrates creating a custom transport.
func ExampleNewBearerTransport() {
	ctx := context.Background()

	store := oauth2store.New(
		ctx,
		"https://auth.example.com/oauth/v2/token",
		"client-id",
		"client-secret",
		"openid",
	)

	transport := httpclient.NewBearerTransport(store, nil)

	fmt.Printf("Transport type: BearerTransport\n")
	_ = transport
	// Output: Transport type: BearerTransport
}
