package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/secure-notes/internal/config" // Internal config loader
	"github.com/iliyamo/secure-notes/internal/crypto"
	"github.com/iliyamo/secure-notes/internal/database"
	"github.com/iliyamo/secure-notes/internal/handler"
	"github.com/iliyamo/secure-notes/internal/middleware"
	"github.com/iliyamo/secure-notes/internal/queue"
	"github.com/iliyamo/secure-notes/internal/repository"
	"github.com/iliyamo/secure-notes/internal/router" // Internal router setup
	"github.com/iliyamo/secure-notes/internal/service"
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config; missing secrets are fatal here

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// The note-content cipher. Disabled by configuration means notes are
	// stored in plaintext; a present-but-empty secret or salt is a
	// configuration error and the server refuses to start.
	var box *crypto.KeyBox
	if cfg.EncryptionEnabled {
		box, err = crypto.New([]byte(cfg.SecretKey), []byte(cfg.Salt))
		if err != nil {
			log.Fatalf("init encryption: %v", err)
		}
	}

	// Redis is optional; a nil client disables the listing cache and the
	// rate limiter but the API stays up.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}
	cache := service.NewNotesCache(rdb, config.LoadCacheConfig())

	// Background consumer for the note activity queue.
	go func() {
		if err := queue.StartNotesConsumer(); err != nil {
			log.Printf("notes consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	notes := repository.NewNoteRepo(db)
	vault := service.NewNoteVault(notes, box, cache, service.PublishNoteEvent)

	authHandler := handler.NewAuthHandler(cfg, users)
	noteHandler := handler.NewNoteHandler(vault)

	e := echo.New()
	router.RegisterRoutes(e) // Register application routes
	router.RegisterAuth(e, authHandler, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.RegisterProtected(e, authHandler, noteHandler, cfg.SecretKey, users)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
