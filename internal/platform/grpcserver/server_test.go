package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/cicconee/payouts/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestServerReportsServing(t *testing.T) {
	log := logging.NewNop()
	lis := bufconn.Listen(1 << 20)

	srv, err := New(Options{Listener: lis, GracefulStopTimeout: time.Second}, log, nil)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(log) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	srv.GracefulStop(log)
	require.NoError(t, <-errCh)
}

func TestRecoveryInterceptor(t *testing.T) {
	ic := RecoveryInterceptor(logging.NewNop())
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Panic"}

	_, err := ic(context.Background(), nil, info, func(context.Context, any) (any, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))

	resp, err := ic(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	ic := LoggingInterceptor(logging.NewNop())
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Fail"}
	want := status.Error(codes.Unavailable, "down")

	_, err := ic(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, want
	})
	assert.Equal(t, want, err)
}
