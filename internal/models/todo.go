package models

// Todo represents a todo item. UserID and TodoID form the composite key.
type Todo struct {
	UserID        string `firestore:"userId" dynamodbav:"userId" json:"userId"`
	TodoID        string `firestore:"todoId" dynamodbav:"todoId" json:"todoId"`
	CreatedAt     string `firestore:"createdAt" dynamodbav:"createdAt" json:"createdAt"`
	Name          string `firestore:"name" dynamodbav:"name" json:"name"`
	DueDate       string `firestore:"dueDate" dynamodbav:"dueDate" json:"dueDate"`
	Done          bool   `firestore:"done" dynamodbav:"done" json:"done"`
	AttachmentURL string `firestore:"attachmentUrl,omitempty" dynamodbav:"attachmentUrl,omitempty" json:"attachmentUrl,omitempty"`
}

// CreateTodoRequest holds the caller-supplied fields of a new todo.
type CreateTodoRequest struct {
	Name    string `json:"name"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}

// UpdateTodoRequest replaces the mutable fields of an existing todo.
type UpdateTodoRequest struct {
	Name    string `json:"name"`
	DueDate string `json:"dueDate"`
	Done    bool   `json:"done"`
}
