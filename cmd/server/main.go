package main

import (
	"log"
	"net/http"
	"os"

	_ "forestinv/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"forestinv/internal/auth"
	"forestinv/internal/cache"
	"forestinv/internal/config"
	"forestinv/internal/db"
	"forestinv/internal/handler"
	"forestinv/internal/model"
	"forestinv/internal/repository"
	"forestinv/internal/router"
	"forestinv/internal/service"
)

// @title Forest Inventory API
// @version 1.0
// @description Field forest inventory backend with plots, trees, species catalog, offline sync and geospatial exports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browser clients authenticate through the session cookie instead.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.SyncLog{},
			&model.Tree{},
			&model.Plot{},
			&model.Species{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Species{},
		&model.Plot{},
		&model.Tree{},
		&model.SyncLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	plotRepo := repository.NewPlotRepository(gormDB)
	treeRepo := repository.NewTreeRepository(gormDB)
	speciesRepo := repository.NewSpeciesRepository(gormDB)
	syncLogRepo := repository.NewSyncLogRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	userService := service.NewUserService(userRepo, cacheClient)
	plotService := service.NewPlotService(plotRepo)
	treeService := service.NewTreeService(treeRepo, plotRepo)
	speciesService := service.NewSpeciesService(speciesRepo, cacheClient)
	syncLogService := service.NewSyncLogService(syncLogRepo)
	exportService := service.NewExportService(treeRepo, plotRepo, speciesRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AllowPasswordMigration)
	userHandler := handler.NewUserHandler(userService)
	plotHandler := handler.NewPlotHandler(plotService)
	treeHandler := handler.NewTreeHandler(treeService)
	speciesHandler := handler.NewSpeciesHandler(speciesService)
	syncLogHandler := handler.NewSyncLogHandler(syncLogService)
	exportHandler := handler.NewExportHandler(exportService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		authHandler,
		userHandler,
		plotHandler,
		treeHandler,
		speciesHandler,
		syncLogHandler,
		exportHandler,
	)

	if cfg.AllowPasswordMigration {
		log.Println("ALLOW_PASSWORD_MIGRATION=true: legacy password migration endpoint is enabled")
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
