package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/studydock/studydock-go/internal/config"
	"github.com/studydock/studydock-go/internal/db"
	"github.com/studydock/studydock-go/internal/handler"
	"github.com/studydock/studydock-go/internal/middleware"
	"github.com/studydock/studydock-go/internal/repository"
	"github.com/studydock/studydock-go/internal/router"
	"github.com/studydock/studydock-go/internal/service"
	"github.com/studydock/studydock-go/internal/storage"
)

const auditInterval = 15 * time.Minute

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "studydock-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()
	cache.SetMetrics(handler.Metrics.CacheHits, handler.Metrics.CacheMisses)

	store, err := storage.NewGCS(ctx, cfg.GCSBucket, cfg.GCSSignerMail, cfg.GCSSignerKey)
	if err != nil {
		log.Fatalf("failed to set up object storage: %v", err)
	}

	// Repositories
	voteRepo := repository.NewVoteRepo(pool)
	commentVoteRepo := repository.NewCommentVoteRepo(pool)
	documentRepo := repository.NewDocumentRepo(pool)
	accessRepo := repository.NewAccessRepo(pool)
	userRepo := repository.NewUserRepo(pool)
	bookmarkRepo := repository.NewBookmarkRepo(pool)

	// Services
	voteSvc := service.NewVoteService(voteRepo, commentVoteRepo, cache)
	documentSvc := service.NewDocumentService(documentRepo, voteRepo, bookmarkRepo, cache, store)
	accessSvc := service.NewAccessService(accessRepo)
	userSvc := service.NewUserService(userRepo, cache)

	// Background workers
	invalidationWorker := service.NewInvalidationWorker(pool, cache)
	go invalidationWorker.Start(ctx)

	auditWorker := service.NewAuditWorker(pool, auditInterval)
	auditWorker.SetMetrics(handler.Metrics.AuditRepairsTotal)
	go auditWorker.Start(ctx)

	// Handlers
	h := &router.Handlers{
		Document: handler.NewDocumentHandler(documentSvc),
		Vote:     handler.NewVoteHandler(voteSvc),
		Access:   handler.NewAccessHandler(accessSvc),
		Bookmark: handler.NewBookmarkHandler(documentSvc),
		User:     handler.NewUserHandler(userSvc),
		Stats:    handler.NewStatsHandler(userSvc),
		Health:   handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "StudyDock API",
		ServerHeader: "StudyDock",
	})

	router.Setup(app, h, cfg.CORSOrigins)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Println("shutdown signal received")
		cancel()
		auditWorker.Stop()

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	log.Printf("StudyDock backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}
