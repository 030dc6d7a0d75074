package provider

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNormalizeGRPCError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", status.Error(codes.DeadlineExceeded, "slow upstream"), "network timeout"},
		{"unavailable", status.Error(codes.Unavailable, "draining"), "service unavailable"},
		{"exhausted", status.Error(codes.ResourceExhausted, "quota"), "rate limit exceeded"},
		{"denied", status.Error(codes.PermissionDenied, "no access"), "permission denied"},
		{"unauthenticated", status.Error(codes.Unauthenticated, "bad token"), "permission denied"},
		{"invalid", status.Error(codes.InvalidArgument, "bad lat"), "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeGRPCError(tt.err)
			if !strings.Contains(got.Error(), tt.want) {
				t.Errorf("NormalizeGRPCError = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeGRPCError_PassThrough(t *testing.T) {
	// Unmapped codes and plain errors come back unchanged
	internal := status.Error(codes.Internal, "broken")
	if got := NormalizeGRPCError(internal); !errors.Is(got, internal) && got.Error() != internal.Error() {
		t.Errorf("internal error rewritten: %v", got)
	}

	plain := errors.New("plain failure")
	if got := NormalizeGRPCError(plain); got.Error() != "plain failure" {
		t.Errorf("plain error rewritten: %v", got)
	}
}
