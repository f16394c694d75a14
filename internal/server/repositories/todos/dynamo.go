package todos

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dmitrijs2005/todovault/internal/common"
	"github.com/dmitrijs2005/todovault/internal/server/models"
)

// DynamoAPI is the subset of the DynamoDB client used by the repository.
// Tests substitute fakes.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoRepository stores items in a DynamoDB table keyed by todoId, with a
// global secondary index keyed by userId for owner listings.
type DynamoRepository struct {
	client      DynamoAPI
	table       string
	byUserIndex string
}

// NewDynamoRepository constructs a repository bound to the given client,
// table and owner index.
func NewDynamoRepository(client DynamoAPI, table, byUserIndex string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table, byUserIndex: byUserIndex}
}

func (r *DynamoRepository) key(todoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"todoId": &types.AttributeValueMemberS{Value: todoID},
	}
}

func (r *DynamoRepository) GetByID(ctx context.Context, todoID string) (*models.TodoItem, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       r.key(todoID),
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	item := &models.TodoItem{}
	if err := attributevalue.UnmarshalMap(out.Item, item); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return item, nil
}

func (r *DynamoRepository) Exists(ctx context.Context, todoID string) (bool, error) {
	_, err := r.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *DynamoRepository) Create(ctx context.Context, item *models.TodoItem) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *DynamoRepository) ListByOwner(ctx context.Context, userID string) ([]*models.TodoItem, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(r.byUserIndex),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var items []*models.TodoItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return items, nil
}

func (r *DynamoRepository) Update(ctx context.Context, todoID string, update *models.TodoUpdate) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.table),
		Key:              r.key(todoID),
		UpdateExpression: aws.String("SET #name = :name, dueDate = :dueDate, done = :done"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":    &types.AttributeValueMemberS{Value: update.Name},
			":dueDate": &types.AttributeValueMemberS{Value: update.DueDate},
			":done":    &types.AttributeValueMemberBOOL{Value: update.Done},
		},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *DynamoRepository) UpdateAttachmentURL(ctx context.Context, todoID string, url string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.table),
		Key:              r.key(todoID),
		UpdateExpression: aws.String("SET attachmentUrl = :attachmentUrl"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":attachmentUrl": &types.AttributeValueMemberS{Value: url},
		},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *DynamoRepository) Delete(ctx context.Context, todoID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       r.key(todoID),
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
