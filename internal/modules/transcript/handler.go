package transcript

import (
	"errors"

	"github.com/dws-labs/transcript-core/internal/middleware"
	"github.com/dws-labs/transcript-core/internal/models"
	"github.com/dws-labs/transcript-core/internal/modules/classifier"
	"github.com/dws-labs/transcript-core/internal/pkg/pagination"
	"github.com/dws-labs/transcript-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler exposes transcript CRUD plus classifier suggestions.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/transcripts", authMW)

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.GET("/:id/suggestions", h.suggestions)
}

// GET /transcripts  [auth]
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	filter := ListFilter{
		Source: models.Source(c.Query("source")),
		Search: c.Query("search"),
	}
	filter.Unprocessed = c.Query("unprocessed") == "true"

	// Non-admins only see their own corpus.
	if !middleware.IsAdmin(c) || c.Query("all") != "true" {
		filter.UserID = middleware.CurrentUserID(c)
	}

	transcripts, pag, err := h.svc.ListPaged(c.Request.Context(), filter, q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, transcripts, pag)
}

// POST /transcripts  [auth]
func (h *Handler) create(c *gin.Context) {
	var dto createDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	source := dto.Source
	if source == "" {
		source = classifier.DetectSourceCategory(dto.Title, dto.Content)
	} else if !models.IsKnownSource(source) {
		response.UnprocessableEntity(c, "unknown source category")
		return
	}

	t := models.TranscriptModel{
		Title:    dto.Title,
		Content:  dto.Content,
		Source:   source,
		Tags:     models.StringArray(dto.Tags).Dedupe(),
		FilePath: dto.FilePath,
		Metadata: dto.Metadata,
		UserID:   middleware.CurrentUserID(c),
	}
	if err := h.svc.Create(c.Request.Context(), &t); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}

// GET /transcripts/:id  [auth]
func (h *Handler) get(c *gin.Context) {
	t, err := h.loadOwned(c)
	if err != nil {
		return // response already written
	}
	response.OK(c, t)
}

// PATCH /transcripts/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	t, err := h.loadOwned(c)
	if err != nil {
		return
	}

	var dto updateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	patch := map[string]interface{}{}
	if dto.Title != nil {
		patch["title"] = *dto.Title
	}
	if dto.Content != nil {
		patch["content"] = *dto.Content
	}
	if dto.Source != nil {
		if !models.IsKnownSource(*dto.Source) {
			response.UnprocessableEntity(c, "unknown source category")
			return
		}
		patch["source"] = *dto.Source
	}
	if dto.Tags != nil {
		patch["tags"] = models.StringArray(*dto.Tags).Dedupe()
	}
	if dto.FilePath != nil {
		patch["file_path"] = *dto.FilePath
	}
	if len(patch) == 0 {
		response.OK(c, t)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), t.ID, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, updated)
}

// GET /transcripts/:id/suggestions  [auth]
func (h *Handler) suggestions(c *gin.Context) {
	t, err := h.loadOwned(c)
	if err != nil {
		return
	}

	suggested := classifier.SuggestNewTags(t.Content, t.Tags)
	tags := make([]suggestedTag, 0, len(suggested))
	for _, tag := range suggested {
		tags = append(tags, suggestedTag{Tag: tag, Label: classifier.FormatTag(tag)})
	}

	response.OK(c, suggestionsDTO{
		Tags:       tags,
		Source:     classifier.DetectSourceCategory(t.Title, t.Content),
		SourceOwn:  t.Source,
		TagsOnFile: t.Tags,
	})
}

// loadOwned fetches the addressed transcript and enforces ownership.
// It writes the error response itself and returns a non-nil error on failure.
func (h *Handler) loadOwned(c *gin.Context) (*models.TranscriptModel, error) {
	t, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return nil, err
	}
	if t == nil {
		response.NotFound(c)
		return nil, gorm.ErrRecordNotFound
	}
	if !middleware.IsAdmin(c) && t.UserID != middleware.CurrentUserID(c) {
		response.Forbidden(c)
		return nil, errors.New("forbidden")
	}
	return t, nil
}
