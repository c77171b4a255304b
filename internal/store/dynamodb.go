package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ytakahashi/todo-backend/internal/models"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by DynamoDBStore.
type DynamoDBAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoDBStore keeps todos in a table with hash key userId and range key
// todoId.
type DynamoDBStore struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBStore(client DynamoDBAPI, table string) *DynamoDBStore {
	return &DynamoDBStore{client: client, table: table}
}

func (s *DynamoDBStore) List(ctx context.Context, userID string) ([]models.Todo, error) {
	todos := []models.Todo{}
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":userId": &ddbtypes.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	}

	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query todos: %w", err)
		}

		var page []models.Todo
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal todos: %w", err)
		}
		todos = append(todos, page...)

		if len(out.LastEvaluatedKey) == 0 {
			return todos, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (s *DynamoDBStore) Create(ctx context.Context, todo models.Todo) (models.Todo, error) {
	item, err := attributevalue.MarshalMap(todo)
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to marshal todo: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(todoId)"),
	})
	if err != nil {
		if isConditionCheckFailed(err) {
			return models.Todo{}, fmt.Errorf("failed to create todo %s: %w", todo.TodoID, ErrAlreadyExists)
		}
		return models.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

func (s *DynamoDBStore) Update(ctx context.Context, userID, todoID string, req models.UpdateTodoRequest) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 todoKey(userID, todoID),
		UpdateExpression:    aws.String("SET #name = :name, dueDate = :dueDate, done = :done"),
		ConditionExpression: aws.String("attribute_exists(todoId)"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
		},
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":name":    &ddbtypes.AttributeValueMemberS{Value: req.Name},
			":dueDate": &ddbtypes.AttributeValueMemberS{Value: req.DueDate},
			":done":    &ddbtypes.AttributeValueMemberBOOL{Value: req.Done},
		},
	})
	if err != nil {
		if isConditionCheckFailed(err) {
			return fmt.Errorf("failed to update todo %s: %w", todoID, ErrNotFound)
		}
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

func (s *DynamoDBStore) Delete(ctx context.Context, userID, todoID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       todoKey(userID, todoID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *DynamoDBStore) SetAttachment(ctx context.Context, userID, todoID, url string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 todoKey(userID, todoID),
		UpdateExpression:    aws.String("SET #attachmentUrl = :attachmentUrl"),
		ConditionExpression: aws.String("attribute_exists(todoId)"),
		ExpressionAttributeNames: map[string]string{
			"#attachmentUrl": "attachmentUrl",
		},
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":attachmentUrl": &ddbtypes.AttributeValueMemberS{Value: url},
		},
	})
	if err != nil {
		if isConditionCheckFailed(err) {
			return fmt.Errorf("failed to set attachment on todo %s: %w", todoID, ErrNotFound)
		}
		return fmt.Errorf("failed to set attachment: %w", err)
	}
	return nil
}

func todoKey(userID, todoID string) map[string]ddbtypes.AttributeValue {
	return map[string]ddbtypes.AttributeValue{
		"userId": &ddbtypes.AttributeValueMemberS{Value: userID},
		"todoId": &ddbtypes.AttributeValueMemberS{Value: todoID},
	}
}

func isConditionCheckFailed(err error) bool {
	var ccf *ddbtypes.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
