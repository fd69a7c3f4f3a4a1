package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"personnel-api/internal/core/auth"
	"personnel-api/internal/core/cache"
	"personnel-api/internal/core/config"
	"personnel-api/internal/core/logger"
	"personnel-api/internal/core/server"
	"personnel-api/internal/repo"
	"personnel-api/internal/service"
	"personnel-api/internal/transport/http/handler"
	"personnel-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate(cfg.Log.Rotate))
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	// 存储（失败直接 Fatal）
	ctx := context.Background()
	userRepo, closeRepo, err := repo.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal("open user store", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer closeRepo()
	log.Info("user store ready", zap.String("driver", cfg.DB.Driver))

	// 依赖
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	var opts []service.Option
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer c.Close()
		if err := c.Ping(ctx); err != nil {
			log.Warn("redis unreachable; reads fall back to store", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		opts = append(opts, service.WithCache(c, time.Duration(cfg.Redis.TTLSec)*time.Second))
	}
	userSvc := service.NewUserService(userRepo, log, opts...)
	if cfg.Admin.Email != "" {
		created, err := userSvc.EnsureAdmin(ctx, service.AdminSeed(cfg.Admin))
		if err != nil {
			log.Fatal("bootstrap admin", zap.String("email", cfg.Admin.Email), zap.Error(err))
		}
		log.Info("bootstrap admin ready", zap.String("email", cfg.Admin.Email), zap.Bool("created", created))
	} else if !repo.Persistent(cfg.DB.Driver) {
		log.Warn("in-memory store without admin.email; every /users call will be rejected")
	}
	authSvc := service.NewAuthService(userRepo, jwter, log)

	r := router.NewAPIEngine(log, jwter, cfg.Limits,
		handler.NewUserHandler(userSvc),
		handler.NewAuthHandler(authSvc),
	)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("personnel api starting",
		zap.String("env", cfg.App.Env),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("users", baseURL+"/users"),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("personnel api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("personnel api stopped gracefully")
}
