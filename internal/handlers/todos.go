package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ytakahashi/todo-backend/internal/models"
	"github.com/ytakahashi/todo-backend/internal/store"
)

// TodoService is implemented by *services.TodoService.
type TodoService interface {
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	CreateTodo(ctx context.Context, userID string, req models.CreateTodoRequest) (models.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID string, req models.UpdateTodoRequest) error
	DeleteTodo(ctx context.Context, userID, todoID string) error
	CreateAttachmentURL(ctx context.Context, userID, todoID string) (string, error)
}

type TodoHandler struct {
	todos  TodoService
	logger *slog.Logger
}

func NewTodoHandler(todos TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		todos:  todos,
		logger: logger,
	}
}

func (h *TodoHandler) Register(g *echo.Group) {
	g.GET("", h.GetTodos)
	g.POST("", h.CreateTodo)
	g.PATCH("/:todoId", h.UpdateTodo)
	g.DELETE("/:todoId", h.DeleteTodo)
	g.POST("/:todoId/attachment", h.GenerateUploadURL)
}

func (h *TodoHandler) GetTodos(c echo.Context) error {
	userID := getUserID(c)
	items, err := h.todos.ListTodos(c.Request().Context(), userID)
	if err != nil {
		return h.serviceError(c, "list todos", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *TodoHandler) CreateTodo(c echo.Context) error {
	var req models.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item, err := h.todos.CreateTodo(c.Request().Context(), getUserID(c), req)
	if err != nil {
		return h.serviceError(c, "create todo", err)
	}

	return c.JSON(http.StatusCreated, map[string]any{"item": item})
}

func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	var req models.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.todos.UpdateTodo(c.Request().Context(), getUserID(c), c.Param("todoId"), req); err != nil {
		return h.serviceError(c, "update todo", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	if err := h.todos.DeleteTodo(c.Request().Context(), getUserID(c), c.Param("todoId")); err != nil {
		return h.serviceError(c, "delete todo", err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TodoHandler) GenerateUploadURL(c echo.Context) error {
	uploadURL, err := h.todos.CreateAttachmentURL(c.Request().Context(), getUserID(c), c.Param("todoId"))
	if err != nil {
		return h.serviceError(c, "generate upload url", err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"uploadUrl": uploadURL})
}

func (h *TodoHandler) serviceError(c echo.Context, op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "todo not found")
	}

	h.logger.Error("failed to "+op, "userId", getUserID(c), "todoId", c.Param("todoId"), "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
