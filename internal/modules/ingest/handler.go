package ingest

import (
	"io"
	"strings"

	"github.com/dws-labs/transcript-core/internal/middleware"
	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
	"github.com/dws-labs/transcript-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// uploads are capped to keep transcript files in memory during ingestion.
const maxUploadBytes = 32 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/transcripts", authMW)

	g.POST("/upload", h.upload)
}

// POST /transcripts/upload  [auth]
func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.BadRequest(c, "file exceeds upload limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if int64(len(data)) > maxUploadBytes {
		response.BadRequest(c, "file exceeds upload limit")
		return
	}

	var tags []string
	if raw := strings.TrimSpace(c.PostForm("tags")); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			tags = append(tags, strings.TrimSpace(tag))
		}
	}

	t, err := h.svc.Ingest(c.Request.Context(), Input{
		Title:       c.PostForm("title"),
		Filename:    fileHeader.Filename,
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Source:      models.Source(c.PostForm("source")),
		Tags:        tags,
		UserID:      middleware.CurrentUserID(c),
	})
	if err != nil {
		if apperrors.IsValidation(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}
