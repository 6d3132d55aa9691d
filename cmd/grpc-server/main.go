package main

import (
	"context"
	"log"
	"net"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"slayervault/internal/catalog"
	"slayervault/internal/grpcserver"
	"slayervault/internal/overrides"
	"slayervault/pkg/dataset"
	"slayervault/pkg/logging"
	"slayervault/pkg/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	grpcCfg, err := utils.LoadGrpcConfig()
	if err != nil {
		log.Fatalf("load grpc config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	records, err := dataset.LoadPath(cfg.DatasetPath)
	if err != nil {
		logger.Fatal("load dataset", zap.Error(err))
	}

	backend, err := overrides.Open(cfg, logger)
	if err != nil {
		logger.Fatal("open override store", zap.Error(err))
	}
	defer backend.Close()

	lis, err := net.Listen("tcp", grpcCfg.Addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", grpcCfg.Addr), zap.Error(err))
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.UnaryLogger(logger)))
	grpcserver.RegisterCatalogServer(srv, grpcserver.NewServer(catalog.NewRepo(records, backend.Store, logger)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down grpc server")
		srv.GracefulStop()
	}()

	logger.Info("grpc server listening", zap.String("addr", grpcCfg.Addr), zap.Int("characters", len(records)))
	if err := srv.Serve(lis); err != nil {
		logger.Fatal("grpc serve", zap.Error(err))
	}
}
