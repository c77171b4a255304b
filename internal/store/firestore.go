package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ytakahashi/todo-backend/internal/models"
)

// FirestoreStore keeps each owner's todos in the subcollection
// users/{userId}/{collection}, one document per todoId.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(ctx context.Context, projectID, collection string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreStore{
		client:     client,
		collection: collection,
	}, nil
}

func (fs *FirestoreStore) Close() error {
	return fs.client.Close()
}

func (fs *FirestoreStore) todos(userID string) *firestore.CollectionRef {
	return fs.client.Collection("users").Doc(userID).Collection(fs.collection)
}

func (fs *FirestoreStore) List(ctx context.Context, userID string) ([]models.Todo, error) {
	iter := fs.todos(userID).
		OrderBy("todoId", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	todos := []models.Todo{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate todos: %w", err)
		}

		var todo models.Todo
		if err := doc.DataTo(&todo); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todo: %w", err)
		}

		todos = append(todos, todo)
	}

	return todos, nil
}

func (fs *FirestoreStore) Create(ctx context.Context, todo models.Todo) (models.Todo, error) {
	_, err := fs.todos(todo.UserID).Doc(todo.TodoID).Create(ctx, todo)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return models.Todo{}, fmt.Errorf("failed to create todo %s: %w", todo.TodoID, ErrAlreadyExists)
		}
		return models.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

func (fs *FirestoreStore) Update(ctx context.Context, userID, todoID string, req models.UpdateTodoRequest) error {
	return fs.update(ctx, userID, todoID, []firestore.Update{
		{Path: "name", Value: req.Name},
		{Path: "dueDate", Value: req.DueDate},
		{Path: "done", Value: req.Done},
	})
}

func (fs *FirestoreStore) SetAttachment(ctx context.Context, userID, todoID, url string) error {
	return fs.update(ctx, userID, todoID, []firestore.Update{
		{Path: "attachmentUrl", Value: url},
	})
}

// update fails with NotFound on a missing document, which is mapped to
// ErrNotFound.
func (fs *FirestoreStore) update(ctx context.Context, userID, todoID string, updates []firestore.Update) error {
	_, err := fs.todos(userID).Doc(todoID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("failed to update todo %s: %w", todoID, ErrNotFound)
		}
		return fmt.Errorf("failed to update todo: %w", err)
	}

	return nil
}

func (fs *FirestoreStore) Delete(ctx context.Context, userID, todoID string) error {
	_, err := fs.todos(userID).Doc(todoID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return nil
}
