package tagedit

import (
	"github.com/dws-labs/transcript-core/internal/middleware"
	"github.com/dws-labs/transcript-core/internal/pkg/apperrors"
	"github.com/dws-labs/transcript-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/tags", authMW)

	g.POST("/apply", h.apply)
}

type applyDTO struct {
	IDs []string `json:"ids"`
	ApplyRequest
}

// POST /tags/apply  [auth]
func (h *Handler) apply(c *gin.Context) {
	var dto applyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	// Admins may edit across owners; everyone else stays in their corpus.
	ownerID := middleware.CurrentUserID(c)
	if middleware.IsAdmin(c) {
		ownerID = ""
	}

	applied, err := h.svc.Apply(c.Request.Context(), dto.IDs, ownerID, dto.ApplyRequest)
	if err != nil {
		if apperrors.IsValidation(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, applied)
}
