package processing

import (
	"strconv"

	"github.com/dws-labs/transcript-core/internal/pkg/response"
	"github.com/dws-labs/transcript-core/internal/pkg/taskqueue"
	"github.com/gin-gonic/gin"
)

// Handler exposes processing tasks and cached summaries.
type Handler struct {
	worker  *Worker
	taskSvc *taskqueue.Service
}

func NewHandler(worker *Worker, taskSvc *taskqueue.Service) *Handler {
	return &Handler{worker: worker, taskSvc: taskSvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/transcripts/:id/summary", authMW, h.summary)

	g := rg.Group("/tasks", authMW, adminMW)
	g.GET("", h.listTasks)
	g.GET("/:id", h.getTask)
	g.DELETE("/:id", h.deleteTask)
}

// GET /transcripts/:id/summary  [auth]
func (h *Handler) summary(c *gin.Context) {
	summary, err := h.worker.GetSummary(c.Request.Context(), c.Param("id"), c.Query("lang"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if summary == nil {
		response.NotFoundMsg(c, "summary not generated yet")
		return
	}
	response.OK(c, summary)
}

// GET /tasks  [admin]
func (h *Handler) listTasks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	tasks, total, err := h.taskSvc.List(c.Request.Context(), page, size,
		c.Query("type"), taskqueue.TaskStatus(c.Query("status")))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"tasks": tasks, "total": total})
}

// GET /tasks/:id  [admin]
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFoundMsg(c, "task not found")
		return
	}
	response.OK(c, task)
}

// DELETE /tasks/:id  [admin]
func (h *Handler) deleteTask(c *gin.Context) {
	if err := h.taskSvc.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.NoContent(c)
}
