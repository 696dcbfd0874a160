package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"blog-cms/cmd/api/auth"
	"blog-cms/cmd/api/router"
	"blog-cms/cmd/api/services"
	"blog-cms/cmd/internal/bootstrap"
	"blog-cms/internal/logger"
	"blog-cms/config"
	"blog-cms/uploads"
)

// @title           Blog CMS API
// @version         1.0
// @description     Public read API and dashboard CRUD for a JSON-backed blog
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)
	base := config.GetBasePath()

	ctx := context.Background()
	repo, closeRepo, err := bootstrap.OpenPostRepository(ctx, cfg.Storage, base)
	if err != nil {
		logger.Log.Errorf("failed to open post storage: %v", err)
		os.Exit(1)
	}

	bus, err := bootstrap.OpenEventBus(ctx, cfg.Events)
	if err != nil {
		logger.Log.Errorf("failed to create kafka producer: %v", err)
		os.Exit(1)
	}

	mu := &sync.Mutex{}
	publicSvc := services.NewPublicService(repo, mu)
	adminSvc := services.NewAdminService(repo, mu, services.AdminOptions{
		Uploads:    uploads.New(bootstrap.ResolvePath(base, cfg.Uploads.Dir), cfg.Uploads.URLPrefix, cfg.Uploads.MaxFileSize),
		Bus:        bus,
		Topic:      cfg.Events.Topic,
		MaxGallery: cfg.Uploads.MaxGallery,
	})

	deps := router.Deps{
		Public:      publicSvc,
		Admin:       adminSvc,
		PublicDir:   bootstrap.ResolvePath(base, cfg.Server.PublicDir),
		CorsOrigins: cfg.Server.CorsAllowedOrigins,
	}
	if cfg.Auth.JWTSecret != "" {
		jwt, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, auth.DefaultTTL)
		if err != nil {
			logger.Log.Errorf("invalid auth config: %v", err)
			os.Exit(1)
		}
		deps.Auth, err = services.NewAuthService(jwt, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
		if err != nil {
			logger.Log.Errorf("invalid admin credentials config: %v", err)
			os.Exit(1)
		}
	} else {
		logger.Log.Warn("auth.jwt_secret is empty, dashboard API is unauthenticated")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.New(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.InfoWithFields("listening", logger.Fields{
			"port":    cfg.Server.Port,
			"storage": cfg.Storage.Driver,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("shutdown error: %v", err)
	}
	adminSvc.Wait()
	bus.Close()
	if err := closeRepo(shutdownCtx); err != nil {
		logger.Log.Errorf("failed to close storage: %v", err)
	}
	logger.Log.Info("server stopped")
}
