package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/cicconee/payouts/internal/payouts/api"
	"github.com/cicconee/payouts/internal/payouts/app"
	"github.com/cicconee/payouts/internal/payouts/config"
	"github.com/cicconee/payouts/internal/payouts/events"
	"github.com/cicconee/payouts/internal/platform/grpcserver"
	"github.com/cicconee/payouts/internal/platform/logging"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC and HTTP payment request services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "optional config file (yaml, json or toml)")

	return cmd
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	log, err := logging.New("payouts", cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer log.Sync()

	// The outbox runs on its own context so it keeps draining while the
	// servers finish in-flight calls.
	outboxCtx, stopOutbox := context.WithCancel(context.Background())
	defer stopOutbox()
	outboxDone := make(chan error, 1)

	var notifier app.Notifier
	if cfg.EventsEnabled {
		outbox := events.NewOutbox(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.EventsTopic, log), log, cfg.OutboxSize)
		defer func() {
			if err := outbox.Close(); err != nil {
				log.Error("kafka writer close failed", "err", err)
			}
		}()
		notifier = outbox
		go func() { outboxDone <- outbox.Run(outboxCtx) }()
	} else {
		outboxDone <- nil
	}

	svc := app.NewService(notifier)

	srv, err := grpcserver.New(
		grpcserver.Options{
			Addr:                cfg.GRPCAddr,
			GracefulStopTimeout: cfg.ShutdownTimeout,
		},
		log,
		func(gs *grpc.Server) {
			api.Register(gs, svc, log)
		},
	)
	if err != nil {
		return fmt.Errorf("grpc server init failed: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(api.NewHTTPHandler(svc, log), cfg.RequestTimeout),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- srv.Serve(log)
	}()
	go func() {
		log.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("payouts running",
		"env", cfg.Env,
		"grpc", cfg.GRPCAddr,
		"http", cfg.HTTPAddr,
		"events_enabled", cfg.EventsEnabled,
	)

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server exited", "err", err)
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "err", err)
	}
	srv.GracefulStop(log)

	stopOutbox()
	if err := <-outboxDone; err != nil {
		log.Error("event outbox exited", "err", err)
	}

	return runErr
}
