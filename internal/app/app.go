// Package app wires configuration, storage, services and routes into a
// runnable HTTP application.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dws-labs/transcript-core/internal/config"
	"github.com/dws-labs/transcript-core/internal/database"
	"github.com/dws-labs/transcript-core/internal/middleware"
	"github.com/dws-labs/transcript-core/internal/modules/diagnostics"
	"github.com/dws-labs/transcript-core/internal/modules/processing"
	"github.com/dws-labs/transcript-core/internal/pkg/blobstore"
	pkgcron "github.com/dws-labs/transcript-core/internal/pkg/cron"
	"github.com/dws-labs/transcript-core/internal/pkg/events"
	pkgredis "github.com/dws-labs/transcript-core/internal/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	rc     *pkgredis.Client
	blob   *blobstore.Client
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler

	// set during route registration, reused by cron jobs
	scanner *diagnostics.Scanner
	worker  *processing.Worker
	pub     *events.Publisher
}

// New initializes the application: config → DB → Redis → routes → cron.
func New(logger *zap.Logger, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyRuntimeSettings(cfg, logger); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.Redis.URLValue())
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	var blob *blobstore.Client
	if cfg.Storage.S3.Enable {
		blob, err = blobstore.New(blobstore.Options{
			Endpoint:        cfg.Storage.S3.Endpoint,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			Bucket:          cfg.Storage.S3.Bucket,
			Region:          cfg.Storage.S3.Region,
			CustomDomain:    cfg.Storage.S3.CustomDomain,
			PathStyleAccess: cfg.Storage.S3.PathStyleAccess,
		})
		if err != nil {
			return nil, fmt.Errorf("blob storage: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return originAllowed(patterns, origin)
		}
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		cfg: cfg, router: router, db: db, rc: rc, blob: blob,
		logger: logger, cancel: cancel, sched: pkgcron.New(),
	}
	app.registerRoutes()

	registerCronJobs(app.sched, app, logger)
	go app.sched.Start(ctx)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
