package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ytakahashi/todo-backend/internal/models"
	"github.com/ytakahashi/todo-backend/internal/storage"
	"github.com/ytakahashi/todo-backend/internal/store"
)

// createdAtLayout is ISO-8601 in UTC with millisecond precision.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// AttachmentIssuer hands out upload links for attachment objects.
type AttachmentIssuer interface {
	Issue(ctx context.Context, attachmentID string) (storage.Links, error)
}

// TodoService applies identity and timestamps before delegating to the
// store. It holds no per-request state.
type TodoService struct {
	store  store.TodoStore
	issuer AttachmentIssuer
	logger *slog.Logger

	now   func() time.Time
	newID func() string
}

func NewTodoService(todos store.TodoStore, issuer AttachmentIssuer, logger *slog.Logger) *TodoService {
	return &TodoService{
		store:  todos,
		issuer: issuer,
		logger: logger,
		now:    time.Now,
		newID:  newTodoID,
	}
}

// newTodoID returns a UUIDv7, whose string form sorts by creation time.
func newTodoID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *TodoService) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	s.logger.Debug("listing todos", "userId", userID)
	return s.store.List(ctx, userID)
}

func (s *TodoService) CreateTodo(ctx context.Context, userID string, req models.CreateTodoRequest) (models.Todo, error) {
	todo := models.Todo{
		UserID:    userID,
		TodoID:    s.newID(),
		CreatedAt: s.now().UTC().Format(createdAtLayout),
		Name:      req.Name,
		DueDate:   req.DueDate,
		Done:      req.Done,
	}

	s.logger.Info("creating todo", "userId", userID, "todoId", todo.TodoID)
	return s.store.Create(ctx, todo)
}

func (s *TodoService) UpdateTodo(ctx context.Context, userID, todoID string, req models.UpdateTodoRequest) error {
	s.logger.Info("updating todo", "userId", userID, "todoId", todoID)
	return s.store.Update(ctx, userID, todoID, req)
}

func (s *TodoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	s.logger.Info("deleting todo", "userId", userID, "todoId", todoID)
	return s.store.Delete(ctx, userID, todoID)
}

// CreateAttachmentURL records the attachment's read URL on the todo and
// only then returns the upload URL.
func (s *TodoService) CreateAttachmentURL(ctx context.Context, userID, todoID string) (string, error) {
	attachmentID := uuid.NewString()

	links, err := s.issuer.Issue(ctx, attachmentID)
	if err != nil {
		return "", err
	}

	if err := s.store.SetAttachment(ctx, userID, todoID, links.AttachmentURL); err != nil {
		return "", fmt.Errorf("failed to record attachment %s: %w", attachmentID, err)
	}

	s.logger.Info("issued attachment upload url", "userId", userID, "todoId", todoID, "attachmentId", attachmentID)
	return links.UploadURL, nil
}
