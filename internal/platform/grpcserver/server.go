package grpcserver

import (
	"context"
	"net"
	"time"

	"github.com/cicconee/payouts/internal/platform/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	lis        net.Listener
	stopAfter  time.Duration
}

type Options struct {
	Addr                string
	GracefulStopTimeout time.Duration

	// Listener overrides Addr. Tests pass a bufconn listener here.
	Listener net.Listener
}

func New(opts Options, log *logging.Logger, register func(s *grpc.Server)) (*Server, error) {
	lis := opts.Listener
	if lis == nil {
		var err error
		lis, err = net.Listen("tcp", opts.Addr)
		if err != nil {
			return nil, err
		}
	}

	gs := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(log),
			LoggingInterceptor(log),
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(gs, hs)

	reflection.Register(gs)

	if register != nil {
		register(gs)
	}

	log.Info("gRPC server created", "addr", lis.Addr().String())

	return &Server{
		grpcServer: gs,
		health:     hs,
		lis:        lis,
		stopAfter:  opts.GracefulStopTimeout,
	}, nil
}

func (s *Server) Serve(log *logging.Logger) error {
	log.Info("gRPC server starting")
	return s.grpcServer.Serve(s.lis)
}

// GracefulStop drains in-flight calls, forcing a hard stop once the
// configured timeout elapses (no limit when zero).
func (s *Server) GracefulStop(log *logging.Logger) {
	log.Info("gRPC server graceful stopping")
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	if s.stopAfter <= 0 {
		<-done
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), s.stopAfter)
		defer cancel()

		select {
		case <-done:
		case <-ctx.Done():
			log.Warn("gRPC graceful stop timed out, forcing stop", "timeout", s.stopAfter)
			s.grpcServer.Stop()
			<-done
		}
	}

	log.Info("gRPC server stopped")
}
