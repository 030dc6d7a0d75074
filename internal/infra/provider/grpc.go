package provider

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// GRPCProvider implements Resolver for gRPC data sources.
// Generic resolution requires the query to carry a GRPCHandler that
// wraps the generated client call; callers can also get the
// connection via Conn() and use generated clients directly.
type GRPCProvider struct {
	*BaseProvider
	endpoint string
	conn     *grpc.ClientConn
}

// NewGRPCProvider creates a new gRPC provider.
func NewGRPCProvider(ctx context.Context, name, endpoint string) (*GRPCProvider, error) {
	// Parse endpoint to determine if TLS is needed
	target := endpoint
	var opts []grpc.DialOption

	// Check scheme
	if strings.HasPrefix(endpoint, "https://") || strings.HasSuffix(endpoint, ":443") {
		// Use TLS
		creds := credentials.NewTLS(&tls.Config{})
		opts = append(opts, grpc.WithTransportCredentials(creds))
		// Strip scheme for Dial
		target = strings.TrimPrefix(target, "https://")
	} else {
		// No TLS
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		target = strings.TrimPrefix(target, "http://")
	}

	// Wait for the connection before serving queries
	opts = append(opts, grpc.WithBlock())

	// Use a timeout for the dial
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(dialCtx, target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial grpc endpoint %s: %w", target, err)
	}

	return &GRPCProvider{
		BaseProvider: NewBaseProvider(name),
		endpoint:     endpoint,
		conn:         conn,
	}, nil
}

// Conn returns the underlying gRPC connection.
// This allows using generated gRPC clients.
func (p *GRPCProvider) Conn() *grpc.ClientConn {
	return p.conn
}

// Resolve executes the query's GRPCHandler against the connection.
func (p *GRPCProvider) Resolve(ctx context.Context, q Query) (any, error) {
	if q.GRPCHandler == nil {
		return nil, fmt.Errorf("query %q has no grpc handler", q.Kind)
	}

	start := time.Now()
	result, err := q.GRPCHandler(ctx, p.conn)
	if err != nil {
		p.RecordFailure()
		return nil, NormalizeGRPCError(err)
	}

	p.RecordSuccess(time.Since(start))
	return result, nil
}

// Close cleans up resources.
func (p *GRPCProvider) Close() error {
	return p.conn.Close()
}

// NormalizeGRPCError maps gRPC status codes onto messages the error
// classifier recognizes.
func NormalizeGRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.DeadlineExceeded:
		return fmt.Errorf("network timeout: %s", st.Message())
	case codes.Unavailable:
		return fmt.Errorf("service unavailable: %s", st.Message())
	case codes.ResourceExhausted:
		return fmt.Errorf("rate limit exceeded: %s", st.Message())
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("permission denied: %s", st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("validation failed: %s", st.Message())
	default:
		return err
	}
}
