package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpcontext "github.com/dtroode/todo-server/internal/api/http/context"
	"github.com/dtroode/todo-server/internal/api/http/router"
	httpserver "github.com/dtroode/todo-server/internal/api/http/server"
	"github.com/dtroode/todo-server/internal/config"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/password"
	"github.com/dtroode/todo-server/internal/repository/postgres"
	"github.com/dtroode/todo-server/internal/server"
	"github.com/dtroode/todo-server/internal/service"
	"github.com/dtroode/todo-server/internal/storage/redis"
	"github.com/dtroode/todo-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	redisClient, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(db)
	todoRepo := postgres.NewTodoRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db.DB)
	denylist := redis.NewDenylist(redisClient)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)

	userService := service.NewUsers(userRepo, hasher, logger)
	todoService := service.NewTodos(todoRepo, logger)
	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, denylist, tokenManager.RefreshTTL(), logger)
	authService := service.NewAuth(userService, tokenService, logger)

	r := router.New(
		authService,
		tokenService,
		userService,
		todoService,
		db,
		httpcontext.NewManager(),
		cfg.HTTP.CORSAllowedOrigins,
		logger,
	)
	httpServer := httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
