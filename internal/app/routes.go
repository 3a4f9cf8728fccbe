package app

import (
	"context"
	"net/http"
	"time"

	"github.com/dws-labs/transcript-core/internal/middleware"
	"github.com/dws-labs/transcript-core/internal/modules/auth"
	"github.com/dws-labs/transcript-core/internal/modules/diagnostics"
	"github.com/dws-labs/transcript-core/internal/modules/ingest"
	"github.com/dws-labs/transcript-core/internal/modules/processing"
	"github.com/dws-labs/transcript-core/internal/modules/tagedit"
	"github.com/dws-labs/transcript-core/internal/modules/transcript"
	"github.com/dws-labs/transcript-core/internal/pkg/events"
	"github.com/dws-labs/transcript-core/internal/pkg/response"
	"github.com/dws-labs/transcript-core/internal/pkg/taskqueue"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db

	authMW := middleware.Auth()
	adminMW := middleware.AdminOnly()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "transcript-core",
		"version": "1.0.0",
	}

	// Shared services
	taskSvc := taskqueue.NewService(a.rc)
	pub := events.NewPublisher(a.rc)
	recordSvc := transcript.NewService(db)
	worker := processing.NewWorker(db, taskSvc, pub, a.cfg.AI, a.logger.Named("processing"))

	scanner := diagnostics.NewScanner(recordSvc, a.cfg.Diagnostics, a.logger.Named("scanner"))
	var blobDl diagnostics.BlobDownloader
	var uploader ingest.Uploader
	if a.blob != nil {
		blobDl = a.blob
		uploader = a.blob
	}
	executor := diagnostics.NewExecutor(recordSvc, worker, blobDl, pub, scanner, a.logger.Named("remediation"))
	probe := diagnostics.NewProbe(db, a.rc, a.blob, recordSvc, a.logger.Named("probe"))

	ingestSvc := ingest.NewService(recordSvc, uploader, worker, a.logger.Named("ingest"))
	tagSvc := tagedit.NewService(recordSvc, pub, a.cfg.Tagging, a.logger.Named("tagedit"))

	a.scanner = scanner
	a.worker = worker
	a.pub = pub

	// Versioned API
	api := r.Group(apiPrefix)

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{"timestamp": uptimeMs})
	})

	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	transcript.NewHandler(recordSvc).RegisterRoutes(api, authMW)
	ingest.NewHandler(ingestSvc).RegisterRoutes(api, authMW)
	tagedit.NewHandler(tagSvc).RegisterRoutes(api, authMW)
	diagnostics.NewHandler(probe, scanner, executor).RegisterRoutes(api, authMW, adminMW)
	processing.NewHandler(worker, taskSvc).RegisterRoutes(api, authMW, adminMW)

	// Operator view of the background schedule.
	jobs := api.Group("/diagnostics/jobs", authMW, adminMW)
	jobs.GET("", func(c *gin.Context) {
		response.OK(c, a.sched.Snapshots())
	})
	jobs.POST("/:name/run", func(c *gin.Context) {
		name := c.Param("name")
		// The run outlives the request, so it must not ride on its context.
		if err := a.sched.Trigger(context.Background(), name); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.OK(c, gin.H{"triggered": name})
	})
}

var processStart = time.Now()
