package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/notekeep-api/internal/domain"
)

// TagRepo provides typed DynamoDB operations for the tags table.
// Tags are global (shared across users), matching the source schema.
type TagRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTagRepo(client *dynamodb.Client, tableName string) *TagRepo {
	return &TagRepo{client: client, tableName: tableName}
}

func (r *TagRepo) Put(ctx context.Context, t *domain.Tag) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal tag: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *TagRepo) Get(ctx context.Context, tagID string) (*domain.Tag, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("tag_id", tagID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("tag not found: %w", domain.ErrNotFound)
	}
	var t domain.Tag
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("name-index"),
		KeyConditionExpression:    aws.String("#n = :v"),
		ExpressionAttributeNames:  map[string]string{"#n": "name"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: name}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("tag not found: %w", domain.ErrNotFound)
	}
	var t domain.Tag
	if err := attributevalue.UnmarshalMap(out.Items[0], &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepo) Scan(ctx context.Context) ([]domain.Tag, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var tags []domain.Tag
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *TagRepo) Update(ctx context.Context, tagID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(withUpdatedAt(updates))
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("tag_id", tagID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *TagRepo) HardDelete(ctx context.Context, tagID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("tag_id", tagID),
	})
	return err
}
