package diagnostics

import (
	"context"

	"github.com/dws-labs/transcript-core/internal/middleware"
	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
	"github.com/dws-labs/transcript-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler exposes the maintenance pipeline over HTTP.
type Handler struct {
	probe    *Probe
	scanner  *Scanner
	executor *Executor
}

func NewHandler(probe *Probe, scanner *Scanner, executor *Executor) *Handler {
	return &Handler{probe: probe, scanner: scanner, executor: executor}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	g := rg.Group("/diagnostics", authMW)

	g.GET("/health", h.health)
	g.POST("/scan", h.scan)

	// Mutating remediation is operator-only.
	g.POST("/mark-processed", adminMW, h.markProcessed)
	g.POST("/reprocess", adminMW, h.reprocess)
	g.POST("/fix", adminMW, h.fix)
}

type batchDTO struct {
	IDs []string `json:"ids"`
}

type scanDTO struct {
	AllUsers bool `json:"all_users"`
}

// GET /diagnostics/health  [auth]
func (h *Handler) health(c *gin.Context) {
	response.OK(c, h.probe.CheckHealth(c.Request.Context()))
}

// POST /diagnostics/scan  [auth]
func (h *Handler) scan(c *gin.Context) {
	var dto scanDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			response.UnprocessableEntity(c, err.Error())
			return
		}
	}

	opts := ScanOptions{UserID: middleware.CurrentUserID(c)}
	if dto.AllUsers {
		if !middleware.IsAdmin(c) {
			response.Forbidden(c)
			return
		}
		opts.AllUsers = true
	}

	report, err := h.scanner.Scan(c.Request.Context(), opts)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, report)
}

// POST /diagnostics/mark-processed  [auth]
func (h *Handler) markProcessed(c *gin.Context) {
	h.batch(c, h.executor.MarkProcessed)
}

// POST /diagnostics/reprocess  [auth]
func (h *Handler) reprocess(c *gin.Context) {
	h.batch(c, h.executor.ForceReprocess)
}

// POST /diagnostics/fix  [auth]
func (h *Handler) fix(c *gin.Context) {
	h.batch(c, h.executor.FixIssues)
}

func (h *Handler) batch(c *gin.Context, op func(ctx context.Context, ids []string, progress Progress) (*Result, error)) {
	var dto batchDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	result, err := op(c.Request.Context(), dto.IDs, nil)
	if err != nil {
		if apperrors.IsValidation(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}
