package grpcclient

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/vperederii/go-vaultx/renewclient"
)

// UnaryClientInterceptor returns a gRPC unary client interceptor that
// automatically adds the current store credential to request metadata.
//
// The interceptor adds the credential as "authorization: Bearer <token>" to
// the outgoing context metadata. If the credential cannot be obtained, the
// RPC call is aborted with an error. The fetch respects the RPC context's
// cancellation and deadline.
func UnaryClientInterceptor(source renewclient.TokenSource) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctx, err := withCredential(ctx, source)
		if err != nil {
			return err
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that
// automatically adds the current store credential to request metadata.
//
// If the credential cannot be obtained, stream creation is aborted with an
// error. The fetch respects the RPC context's cancellation and deadline.
func StreamClientInterceptor(source renewclient.TokenSource) grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		ctx, err := withCredential(ctx, source)
		if err != nil {
			return nil, err
		}
		return streamer(ctx, desc, cc, method, opts...)
	}
}

// withCredential appends the bearer credential to the outgoing metadata.
func withCredential(ctx context.Context, source renewclient.TokenSource) (context.Context, error) {
	token, err := source.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("grpcclient: failed to get credential: %w", err)
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token), nil
}
