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

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/parleychat/parley-server/internal/api/http/router"
	httpServer "github.com/parleychat/parley-server/internal/api/http/server"
	"github.com/parleychat/parley-server/internal/config"
	"github.com/parleychat/parley-server/internal/logger"
	"github.com/parleychat/parley-server/internal/model"
	"github.com/parleychat/parley-server/internal/registry"
	"github.com/parleychat/parley-server/internal/repository/postgres"
	"github.com/parleychat/parley-server/internal/server"
	"github.com/parleychat/parley-server/internal/service"
	storage "github.com/parleychat/parley-server/internal/storage/minio"
	"github.com/parleychat/parley-server/internal/token"
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

	userRepo := postgres.NewUserRepository(db)
	roomRepo := postgres.NewChatRoomRepository(db.DB)
	messageRepo := postgres.NewMessageRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	blacklistRepo := postgres.NewBlacklistRepository(db)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm)
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	connRegistry := registry.New(logger.Named("registry"))

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, blacklistRepo, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, logger)
	authService := service.NewAuth(userRepo, tokenService, logger)
	userService := service.NewUser(userRepo, storageClient, logger)
	roomService := service.NewChatRoom(roomRepo, userRepo, logger)
	messageService := service.NewMessage(messageRepo, roomRepo, connRegistry, logger)

	r := router.New(authService, userService, roomService, messageService, tokenService, userRepo, connRegistry, logger.Named("http"))
	apiServer := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
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
