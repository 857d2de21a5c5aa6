package handler

import (
	"net/http"

	"taskapp/internal/domain/model"
	"taskapp/internal/logging"
	"taskapp/internal/middleware"
	"taskapp/internal/usecase"

	"github.com/labstack/echo/v4"
)

type TaskHandler struct {
	uc  *usecase.TaskUsecase
	log logging.Logger
}

func NewTaskHandler(uc *usecase.TaskUsecase, log logging.Logger) *TaskHandler {
	return &TaskHandler{uc: uc, log: log}
}

// /tasks のルートを登録（認証済みgroup）
func (h *TaskHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type createTaskRequest struct {
	Title string `json:"title"`
}

// 省略された項目は変更しない
type updateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type taskResponse struct {
	Task model.Task `json:"task"`
}

type tasksResponse struct {
	Tasks []model.Task `json:"tasks"`
}

func (h *TaskHandler) list(c echo.Context) error {
	tasks, err := h.uc.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, tasksResponse{Tasks: tasks})
}

func (h *TaskHandler) create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	task, err := h.uc.Create(c.Request().Context(), middleware.UserID(c), req.Title)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, taskResponse{Task: task})
}

func (h *TaskHandler) get(c echo.Context) error {
	task, err := h.uc.Get(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (h *TaskHandler) update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	task, err := h.uc.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), usecase.UpdateTaskInput{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (h *TaskHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}
