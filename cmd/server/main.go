package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/homemenu/backend/internal/config"
	"github.com/homemenu/backend/internal/database"
	"github.com/homemenu/backend/internal/handlers"
	"github.com/homemenu/backend/internal/middleware"
	"github.com/homemenu/backend/internal/services"
	"github.com/homemenu/backend/internal/storage"
	"github.com/homemenu/backend/internal/store"
	"github.com/homemenu/backend/pkg/logger"
	"github.com/homemenu/backend/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rooms, err := openRoomStore(ctx, cfg, db)
	if err != nil {
		log.Fatalf("room store initialization failed: %v", err)
	}
	snapshots, err := openSnapshotStore(ctx, cfg, db)
	if err != nil {
		log.Fatalf("snapshot store initialization failed: %v", err)
	}

	sharing := services.NewSharingService(rooms, snapshots, nil, cfg.Sharing.MaxAttempts)
	manager := services.NewMenuManager(db, sharing, store.NewSharedMenuStore(db))

	identity := services.NewIdentityFeed(64)
	manager.WatchIdentity(ctx, identity)
	services.NewRoomSweeper(rooms, cfg.Sharing.SweepInterval).Start(ctx)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())

	handlers.RegisterRoutes(app, handlers.Handlers{
		Auth:  handlers.NewAuthHandler(db, identity),
		Menu:  handlers.NewMenuHandler(manager),
		Rooms: handlers.NewRoomsHandler(manager),
	}, authMiddleware)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":             cfg.Server.Port,
		"address":          listenAddr,
		"room_backend":     cfg.Sharing.RoomBackend,
		"snapshot_backend": cfg.Sharing.SnapshotBackend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		cancel()
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}

func openRoomStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (store.RoomStore, error) {
	switch cfg.Sharing.RoomBackend {
	case config.BackendDatabase, "":
		return store.NewGormRoomStore(db), nil
	case config.BackendRedis:
		client, err := storage.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store.NewRedisRoomStore(client), nil
	case config.BackendMemory:
		return store.NewMemoryRoomStore(), nil
	default:
		return nil, fmt.Errorf("unsupported room backend %q", cfg.Sharing.RoomBackend)
	}
}

func openSnapshotStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (store.SnapshotStore, error) {
	switch cfg.Sharing.SnapshotBackend {
	case config.BackendDatabase, "":
		return store.NewGormSnapshotStore(db), nil
	case config.BackendMinIO:
		client, err := storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed ensuring minio bucket: %w", err)
		}
		return store.NewObjectSnapshotStore(client), nil
	case config.BackendMemory:
		return store.NewMemorySnapshotStore(), nil
	default:
		return nil, fmt.Errorf("unsupported snapshot backend %q", cfg.Sharing.SnapshotBackend)
	}
}
