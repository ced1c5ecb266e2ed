package grpcclient_test

import (
	"context"
	"fmt"
	"log"

	"github.com/vperederii/go-vaultx/grpcclient"
	"github.com/vperederii/go-vaultx/oauth2store"
)

// Example demonstrates basic gRPC client builder usage.
func Example() {
	ctx := context.Background()

	store := oauth2store.New(ctx,
		"https://auth.example.com/oauth/v2/token",
		"client-id",
		"client-secret",
		"openid profile",
	)

	conn, err := grpcclient.NewBuilder().
		WithAddress("server.example.com:9090").
		WithTokenSource(store).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Println("gRPC connection established")
	// Output: gRPC connection established
}

// ExampleNewBuilder demonstrates creating a new builder.
func ExampleNewBuilder() {
	builder := grpcclient.NewBuilder()

	fmt.Println("Builder created")
	_ = builder
	// Output: Builder created
}

// ExampleBuilder_WithAddress demonstrates setting the server address.
func ExampleBuilder_WithAddress() {
	conn, err := grpcclient.NewBuilder().
		WithAddress("api.example.com:9090").
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Println("Connected to api.example.com:9090")
	// Output: Connected to api.example.com:9090
}

// ExampleBuilder_WithTokenSource demonstrates credential injection.
func ExampleBuilder_WithTokenSource() {
	ctx := context.Background()

	store := oauth2store.New(ctx,
		"https://auth.example.com/oauth/v2/token",
		"my-client-id",
		"my-client-secret",
		"openid profile email",
	)

	conn, err := grpcclient.NewBuilder().
		WithAddress("secure.example.com:9090").
		WithTokenSource(store).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	fmt.Println("Credential injection enabled")
	// Output: Credential injection enabled
}

// ExampleBuilder_WithTLS demonstrates TLS configuration.
func ExampleBuilder_WithTLS() {
	conn, err := grpcclient.NewBuilder().
		WithAddress("secure.example.com:9090").
		WithTLS(
			"/path/to/ca.crt",     // CA certificate
			"/path/to/client.crt", // Client certificate (optional)
			"/path/to/client.key", // Client key (optional)
			"secure.example.com",  // Server name override (optional)
		).
		Build()
	if err != nil {
		// In this example, files don't exist, so we expect an error
		fmt.Println("TLS configuration attempted")
		return
	}
	defer conn.Close()

	fmt.Println("TLS enabled")
	// Output: TLS configuration attempted
}
