package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"

	"github.com/imishinist/espikey/api/kvpb"
	"github.com/imishinist/espikey/internal/api"
	"github.com/imishinist/espikey/internal/service"
	"github.com/imishinist/espikey/internal/store"
	"github.com/imishinist/espikey/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		hclog.Default().Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "espikey",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	memStore := store.NewMemStore(cfg.Shards)
	instrumented := store.NewInstrumentedStore(memStore)
	svc := service.New(instrumented,
		service.WithLogger(logger.Named("service")),
		service.WithMaxValueBytes(cfg.MaxValueBytes),
	)

	grpcServer := grpc.NewServer()
	kvpb.RegisterKVServiceServer(grpcServer, api.NewGRPCServer(svc))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen", "addr", cfg.GRPCAddr, "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC serve failed", "error", err)
			os.Exit(1)
		}
	}()

	// Debug HTTP surface: health, metrics, base64 get/set.
	mux := http.NewServeMux()
	api.NewServer(svc).RegisterRoutes(mux)
	mux.HandleFunc("/metrics", api.MetricsHandler(instrumented))

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP serve failed", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
	grpcServer.GracefulStop()
}
