package todos

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dmitrijs2005/todovault/internal/common"
	"github.com/dmitrijs2005/todovault/internal/server/models"
)

// -------- test fake --------

type fakeDynamoClient struct {
	getOut *dynamodb.GetItemOutput
	getErr error
	getIn  *dynamodb.GetItemInput

	putErr error
	putIn  *dynamodb.PutItemInput

	queryOut *dynamodb.QueryOutput
	queryErr error
	queryIn  *dynamodb.QueryInput

	updateErr error
	updateIn  *dynamodb.UpdateItemInput

	deleteErr error
	deleteIn  *dynamodb.DeleteItemInput
}

func (f *fakeDynamoClient) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getIn = in
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut != nil {
		return f.getOut, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamoClient) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func (f *fakeDynamoClient) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryIn = in
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.queryOut != nil {
		return f.queryOut, nil
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeDynamoClient) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updateIn = in
	return &dynamodb.UpdateItemOutput{}, f.updateErr
}

func (f *fakeDynamoClient) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deleteIn = in
	return &dynamodb.DeleteItemOutput{}, f.deleteErr
}

// -------- helpers --------

func newDynamoRepo(client *fakeDynamoClient) *DynamoRepository {
	return NewDynamoRepository(client, "todos", "todos-by-user")
}

func mustMarshalItem(t *testing.T, item *models.TodoItem) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		t.Fatalf("MarshalMap error: %v", err)
	}
	return av
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// -------- tests --------

func TestDynamoGetByID_Found(t *testing.T) {
	want := &models.TodoItem{TodoID: "t1", UserID: "u1", Name: "Buy milk", CreatedAt: "2026-09-01T10:00:00Z"}
	client := &fakeDynamoClient{getOut: &dynamodb.GetItemOutput{Item: mustMarshalItem(t, want)}}
	repo := newDynamoRepo(client)

	got, err := repo.GetByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.TodoID != "t1" || got.UserID != "u1" || got.Name != "Buy milk" {
		t.Fatalf("unexpected item: %+v", got)
	}

	if *client.getIn.TableName != "todos" {
		t.Fatalf("unexpected table: %v", *client.getIn.TableName)
	}
	key, ok := client.getIn.Key["todoId"].(*types.AttributeValueMemberS)
	if !ok || key.Value != "t1" {
		t.Fatalf("unexpected key: %+v", client.getIn.Key)
	}
}

func TestDynamoGetByID_Absent(t *testing.T) {
	repo := newDynamoRepo(&fakeDynamoClient{})

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDynamoGetByID_DBError(t *testing.T) {
	repo := newDynamoRepo(&fakeDynamoClient{getErr: errBoom{}})

	_, err := repo.GetByID(context.Background(), "t1")
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want wrapped db error, got %v", err)
	}
}

func TestDynamoExists(t *testing.T) {
	item := &models.TodoItem{TodoID: "t1", UserID: "u1"}
	repo := newDynamoRepo(&fakeDynamoClient{getOut: &dynamodb.GetItemOutput{Item: mustMarshalItem(t, item)}})

	ok, err := repo.Exists(context.Background(), "t1")
	if err != nil || !ok {
		t.Fatalf("want true, got %v, %v", ok, err)
	}

	repo = newDynamoRepo(&fakeDynamoClient{})
	ok, err = repo.Exists(context.Background(), "t2")
	if err != nil || ok {
		t.Fatalf("want false, got %v, %v", ok, err)
	}
}

func TestDynamoCreate_MarshalsAllFields(t *testing.T) {
	client := &fakeDynamoClient{}
	repo := newDynamoRepo(client)

	url := "https://bucket.example/att-1"
	item := &models.TodoItem{
		TodoID:        "t1",
		UserID:        "u1",
		Name:          "Buy milk",
		DueDate:       "2026-09-30",
		CreatedAt:     "2026-09-01T10:00:00Z",
		Done:          true,
		AttachmentURL: &url,
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	var got models.TodoItem
	if err := attributevalue.UnmarshalMap(client.putIn.Item, &got); err != nil {
		t.Fatalf("UnmarshalMap error: %v", err)
	}
	if got.TodoID != "t1" || got.UserID != "u1" || !got.Done || got.AttachmentURL == nil || *got.AttachmentURL != url {
		t.Fatalf("unexpected stored item: %+v", got)
	}
}

func TestDynamoListByOwner_QueriesIndex(t *testing.T) {
	items := []*models.TodoItem{
		{TodoID: "t1", UserID: "u1", Name: "a"},
		{TodoID: "t2", UserID: "u1", Name: "b"},
	}
	var avs []map[string]types.AttributeValue
	for _, it := range items {
		avs = append(avs, mustMarshalItem(t, it))
	}

	client := &fakeDynamoClient{queryOut: &dynamodb.QueryOutput{Items: avs}}
	repo := newDynamoRepo(client)

	got, err := repo.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].TodoID != "t1" || got[1].TodoID != "t2" {
		t.Fatalf("unexpected items: %+v", got)
	}

	if *client.queryIn.IndexName != "todos-by-user" {
		t.Fatalf("unexpected index: %v", *client.queryIn.IndexName)
	}
	if *client.queryIn.KeyConditionExpression != "userId = :userId" {
		t.Fatalf("unexpected condition: %v", *client.queryIn.KeyConditionExpression)
	}
	val, ok := client.queryIn.ExpressionAttributeValues[":userId"].(*types.AttributeValueMemberS)
	if !ok || val.Value != "u1" {
		t.Fatalf("unexpected values: %+v", client.queryIn.ExpressionAttributeValues)
	}
}

func TestDynamoUpdate_SetsMutableFieldsOnly(t *testing.T) {
	client := &fakeDynamoClient{}
	repo := newDynamoRepo(client)

	err := repo.Update(context.Background(), "t1", &models.TodoUpdate{Name: "Buy bread", DueDate: "2026-10-01", Done: true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	in := client.updateIn
	if *in.UpdateExpression != "SET #name = :name, dueDate = :dueDate, done = :done" {
		t.Fatalf("unexpected expression: %v", *in.UpdateExpression)
	}
	if in.ExpressionAttributeNames["#name"] != "name" {
		t.Fatalf("unexpected names: %+v", in.ExpressionAttributeNames)
	}
	name := in.ExpressionAttributeValues[":name"].(*types.AttributeValueMemberS)
	done := in.ExpressionAttributeValues[":done"].(*types.AttributeValueMemberBOOL)
	if name.Value != "Buy bread" || !done.Value {
		t.Fatalf("unexpected values: %+v", in.ExpressionAttributeValues)
	}
}

func TestDynamoUpdateAttachmentURL(t *testing.T) {
	client := &fakeDynamoClient{}
	repo := newDynamoRepo(client)

	err := repo.UpdateAttachmentURL(context.Background(), "t1", "https://bucket.example/att-1")
	if err != nil {
		t.Fatalf("UpdateAttachmentURL error: %v", err)
	}

	in := client.updateIn
	if *in.UpdateExpression != "SET attachmentUrl = :attachmentUrl" {
		t.Fatalf("unexpected expression: %v", *in.UpdateExpression)
	}
	url := in.ExpressionAttributeValues[":attachmentUrl"].(*types.AttributeValueMemberS)
	if url.Value != "https://bucket.example/att-1" {
		t.Fatalf("unexpected url: %v", url.Value)
	}
}

func TestDynamoDelete(t *testing.T) {
	client := &fakeDynamoClient{}
	repo := newDynamoRepo(client)

	if err := repo.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	key := client.deleteIn.Key["todoId"].(*types.AttributeValueMemberS)
	if key.Value != "t1" {
		t.Fatalf("unexpected key: %v", key.Value)
	}

	repo = newDynamoRepo(&fakeDynamoClient{deleteErr: errBoom{}})
	if err := repo.Delete(context.Background(), "t1"); err == nil {
		t.Fatalf("want wrapped db error, got nil")
	}
}
