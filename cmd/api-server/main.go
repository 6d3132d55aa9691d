package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"slayervault/internal/admin"
	"slayervault/internal/catalog"
	"slayervault/internal/overrides"
	synchub "slayervault/internal/sync"
	"slayervault/internal/upload"
	"slayervault/pkg/dataset"
	"slayervault/pkg/logging"
	"slayervault/pkg/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	adminCfg, err := utils.LoadAdminConfig()
	if err != nil {
		log.Fatalf("load admin config: %v", err)
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
	logger.Info("dataset loaded", zap.Int("characters", len(records)))

	backend, err := overrides.Open(cfg, logger)
	if err != nil {
		logger.Fatal("open override store", zap.Error(err))
	}
	defer backend.Close()
	store := backend.Store

	auth := newAuthorizer(adminCfg)
	if !auth.Secrets.Configured() {
		logger.Warn("ADMIN_PASSWORD not set; admin writes are disabled")
	}
	if adminCfg.JWTSecret == "" {
		logger.Warn("VAULT_JWT_SECRET not set; admin login tokens are disabled")
	}

	hub := synchub.NewHub(logger)
	d := deps{
		Catalog:   catalog.NewRepo(records, store, logger),
		Overrides: store,
		Auth:      auth,
		Hub:       hub,
		Log:       logger,
	}
	if cfg.BlobEndpoint != "" {
		d.Blobs = upload.NewHTTPStore(cfg.BlobEndpoint, cfg.BlobToken)
	} else {
		d.Blobs = upload.NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL)
		d.UploadDir = cfg.UploadDir
		d.UploadBaseURL = cfg.UploadBaseURL
	}
	if backend.DB != nil {
		d.Ping = backend.DB.PingContext
	}

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: newRouter(d),
	}
	tcpSrv := synchub.NewServer(cfg.TCPAddr, hub, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.WatchOverrides && backend.DB == nil {
		w, err := overrides.NewWatcher(cfg.OverridesPath, func() {
			hub.BroadcastJSON(synchub.OverrideEvent{Type: synchub.EventOverrideReload, At: time.Now().UTC()})
		}, logger)
		if err != nil {
			logger.Fatal("create overrides watcher", zap.Error(err))
		}
		if err := w.Start(gctx); err != nil {
			logger.Fatal("start overrides watcher", zap.Error(err))
		}
		defer w.Stop()
	}

	g.Go(tcpSrv.Run)

	g.Go(func() error {
		logger.Info("http api listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
		if err := tcpSrv.Close(); err != nil {
			logger.Warn("tcp shutdown", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
	}
	logger.Info("servers stopped")
}

func newAuthorizer(cfg utils.AdminConfig) admin.Authorizer {
	return admin.Authorizer{
		Secrets: admin.SecretChecker{Password: cfg.Password, Hash: cfg.PasswordHash},
		Tokens: admin.TokenService{
			Secret:   []byte(cfg.JWTSecret),
			Issuer:   cfg.JWTIssuer,
			Duration: cfg.JWTDuration,
		},
	}
}
