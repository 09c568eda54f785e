package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/gophauth/internal/logging"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", nopLogger{}, fakePinger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, fakePinger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

func checkHealth(t *testing.T, store Pinger) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()

	addr := freeAddr(t)
	srv := NewGRPCServer(addr, nopLogger{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)

	var resp *healthpb.HealthCheckResponse
	require.Eventually(t, func() bool {
		callCtx, callCancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer callCancel()
		resp, err = client.Check(callCtx, &healthpb.HealthCheckRequest{Service: ServiceName})
		return err == nil
	}, 3*time.Second, 50*time.Millisecond)

	return resp.GetStatus()
}

func TestHealth_Serving(t *testing.T) {
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkHealth(t, fakePinger{}))
}

func TestHealth_NotServingWhenStoreDown(t *testing.T) {
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkHealth(t, fakePinger{err: errors.New("down")}))
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := &GRPCServer{logger: nopLogger{}}

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	handlerErr := errors.New("boom")

	resp, err := s.loggingInterceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		assert.Equal(t, "req", req)
		return "ok", handlerErr
	})

	assert.Equal(t, "ok", resp)
	assert.ErrorIs(t, err, handlerErr)
}
