package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytakahashi/todo-backend/internal/models"
	"github.com/ytakahashi/todo-backend/internal/storage"
	"github.com/ytakahashi/todo-backend/internal/store"
)

// memoryStore implements store.TodoStore with the same semantics as the
// real backends.
type memoryStore struct {
	mu    sync.Mutex
	items map[string]map[string]models.Todo
	calls []string
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: map[string]map[string]models.Todo{}}
}

func (m *memoryStore) List(_ context.Context, userID string) ([]models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "List")
	if m.err != nil {
		return nil, m.err
	}

	todos := []models.Todo{}
	for _, todo := range m.items[userID] {
		todos = append(todos, todo)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].TodoID > todos[j].TodoID })
	return todos, nil
}

func (m *memoryStore) Create(_ context.Context, todo models.Todo) (models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Create")
	if m.err != nil {
		return models.Todo{}, m.err
	}

	if _, ok := m.items[todo.UserID][todo.TodoID]; ok {
		return models.Todo{}, store.ErrAlreadyExists
	}
	if m.items[todo.UserID] == nil {
		m.items[todo.UserID] = map[string]models.Todo{}
	}
	m.items[todo.UserID][todo.TodoID] = todo
	return todo, nil
}

func (m *memoryStore) Update(_ context.Context, userID, todoID string, req models.UpdateTodoRequest) error {
	return m.modify("Update", userID, todoID, func(todo *models.Todo) {
		todo.Name = req.Name
		todo.DueDate = req.DueDate
		todo.Done = req.Done
	})
}

func (m *memoryStore) SetAttachment(_ context.Context, userID, todoID, url string) error {
	return m.modify("SetAttachment", userID, todoID, func(todo *models.Todo) {
		todo.AttachmentURL = url
	})
}

func (m *memoryStore) modify(call, userID, todoID string, fn func(*models.Todo)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	if m.err != nil {
		return m.err
	}

	todo, ok := m.items[userID][todoID]
	if !ok {
		return fmt.Errorf("todo %s: %w", todoID, store.ErrNotFound)
	}
	fn(&todo)
	m.items[userID][todoID] = todo
	return nil
}

func (m *memoryStore) Delete(_ context.Context, userID, todoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Delete")
	if m.err != nil {
		return m.err
	}
	delete(m.items[userID], todoID)
	return nil
}

type fakeIssuer struct {
	ids   []string
	err   error
	store *memoryStore
}

func (f *fakeIssuer) Issue(_ context.Context, attachmentID string) (storage.Links, error) {
	f.ids = append(f.ids, attachmentID)
	if f.store != nil {
		f.store.mu.Lock()
		f.store.calls = append(f.store.calls, "Issue")
		f.store.mu.Unlock()
	}
	if f.err != nil {
		return storage.Links{}, f.err
	}
	return storage.Links{
		UploadURL:     "https://bucket.s3.amazonaws.com/" + attachmentID + "?X-Amz-Signature=sig",
		AttachmentURL: "https://bucket.s3.amazonaws.com/" + attachmentID,
	}, nil
}

func newTestService() (*TodoService, *memoryStore, *fakeIssuer) {
	mem := newMemoryStore()
	issuer := &fakeIssuer{store: mem}
	svc := NewTodoService(mem, issuer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, mem, issuer
}

func TestTodoService_CreateAndList(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{Name: "Buy milk", DueDate: "2024-01-01", Done: false})
	require.NoError(t, err)

	assert.Equal(t, "u1", created.UserID)
	assert.NotEmpty(t, created.TodoID)
	assert.Empty(t, created.AttachmentURL)
	_, err = time.Parse(time.RFC3339, created.CreatedAt)
	require.NoError(t, err, "createdAt %q", created.CreatedAt)

	todos, err := svc.ListTodos(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, created, todos[0])
	assert.Equal(t, "Buy milk", todos[0].Name)
	assert.False(t, todos[0].Done)

	others, err := svc.ListTodos(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, others)
	assert.Empty(t, others)
}

func TestTodoService_CreateTodo_StampsIdentityAndTime(t *testing.T) {
	svc, _, _ := newTestService()
	fixed := time.Date(2024, 1, 1, 10, 30, 0, 123456789, time.FixedZone("JST", 9*60*60))
	svc.now = func() time.Time { return fixed }

	created, err := svc.CreateTodo(context.Background(), "u1", models.CreateTodoRequest{Name: "n"})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T01:30:00.123Z", created.CreatedAt)
}

func TestTodoService_CreateTodo_FreshIDs(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	seen := map[string]bool{}
	var order []string
	for i := 0; i < 50; i++ {
		created, err := svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{Name: fmt.Sprintf("todo %d", i)})
		require.NoError(t, err)
		assert.False(t, seen[created.TodoID], "duplicate id %s", created.TodoID)
		seen[created.TodoID] = true
		order = append(order, created.TodoID)
	}

	todos, err := svc.ListTodos(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, todos, 50)
	assert.Equal(t, order[len(order)-1], todos[0].TodoID, "newest first")
	assert.Equal(t, order[0], todos[len(todos)-1].TodoID)
}

func TestTodoService_UpdateTodo(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{Name: "Buy milk", DueDate: "2024-01-01"})
	require.NoError(t, err)

	err = svc.UpdateTodo(ctx, "u1", created.TodoID, models.UpdateTodoRequest{Name: "Buy milk 2%", DueDate: "2024-01-02", Done: true})
	require.NoError(t, err)

	todos, err := svc.ListTodos(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, created.TodoID, todos[0].TodoID)
	assert.Equal(t, created.CreatedAt, todos[0].CreatedAt)
	assert.Equal(t, "Buy milk 2%", todos[0].Name)
	assert.Equal(t, "2024-01-02", todos[0].DueDate)
	assert.True(t, todos[0].Done)
}

func TestTodoService_UpdateTodo_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{Name: "mine"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateTodo(ctx, "u1", "missing", models.UpdateTodoRequest{}), store.ErrNotFound)
	assert.ErrorIs(t, svc.UpdateTodo(ctx, "u2", created.TodoID, models.UpdateTodoRequest{Name: "stolen"}), store.ErrNotFound)

	todos, err := svc.ListTodos(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "mine", todos[0].Name)
}

func TestTodoService_DeleteTodo(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	keep, err := svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{Name: "keep"})
	require.NoError(t, err)
	drop, err := svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{Name: "drop"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTodo(ctx, "u1", drop.TodoID))
	require.NoError(t, svc.DeleteTodo(ctx, "u1", drop.TodoID))

	todos, err := svc.ListTodos(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.Todo{keep}, todos)
}

func TestTodoService_CreateAttachmentURL(t *testing.T) {
	svc, mem, issuer := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{Name: "photo"})
	require.NoError(t, err)
	mem.calls = nil

	uploadURL, err := svc.CreateAttachmentURL(ctx, "u1", created.TodoID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Issue", "SetAttachment"}, mem.calls)

	todos, err := svc.ListTodos(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, todos, 1)

	require.Len(t, issuer.ids, 1)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/"+issuer.ids[0], todos[0].AttachmentURL)
	assert.NotEqual(t, uploadURL, todos[0].AttachmentURL)
	assert.Contains(t, uploadURL, issuer.ids[0])

	again, err := svc.CreateAttachmentURL(ctx, "u1", created.TodoID)
	require.NoError(t, err)
	assert.NotEqual(t, uploadURL, again)
	require.Len(t, issuer.ids, 2)
	assert.NotEqual(t, issuer.ids[0], issuer.ids[1])
}

func TestTodoService_CreateAttachmentURL_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("issuer error propagates", func(t *testing.T) {
		svc, mem, issuer := newTestService()
		created, err := svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{Name: "photo"})
		require.NoError(t, err)

		cause := &storage.IssuerError{Key: "k", Err: errors.New("throttled")}
		issuer.err = cause
		mem.calls = nil

		url, err := svc.CreateAttachmentURL(ctx, "u1", created.TodoID)
		assert.Empty(t, url)
		assert.Same(t, cause, err)
		assert.Equal(t, []string{"Issue"}, mem.calls)
	})

	t.Run("missing todo", func(t *testing.T) {
		svc, _, _ := newTestService()

		url, err := svc.CreateAttachmentURL(ctx, "u1", "missing")
		assert.Empty(t, url)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestTodoService_PropagatesStoreErrors(t *testing.T) {
	svc, mem, _ := newTestService()
	ctx := context.Background()
	mem.err = errors.New("service unavailable")

	_, err := svc.ListTodos(ctx, "u1")
	assert.ErrorIs(t, err, mem.err)
	_, err = svc.CreateTodo(ctx, "u1", models.CreateTodoRequest{})
	assert.ErrorIs(t, err, mem.err)
	assert.ErrorIs(t, svc.UpdateTodo(ctx, "u1", "t", models.UpdateTodoRequest{}), mem.err)
	assert.ErrorIs(t, svc.DeleteTodo(ctx, "u1", "t"), mem.err)
}
