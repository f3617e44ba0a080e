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

// NoteRepo provides typed DynamoDB operations for the notes table.
type NoteRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNoteRepo(client *dynamodb.Client, tableName string) *NoteRepo {
	return &NoteRepo{client: client, tableName: tableName}
}

func (r *NoteRepo) Put(ctx context.Context, n *domain.Note) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *NoteRepo) Get(ctx context.Context, noteID string) (*domain.Note, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("note_id", noteID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("note not found: %w", domain.ErrNotFound)
	}
	var n domain.Note
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// QueryByUser returns a page of the user's notes via the user_id-index GSI.
// cursor is a base64-encoded note_id used as ExclusiveStartKey. Filters are
// applied server-side; a filtered page may come back short of limit.
func (r *NoteRepo) QueryByUser(ctx context.Context, userID string, filter domain.NoteFilter, limit int32, cursor string) ([]domain.Note, string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		Limit: aws.Int32(limit),
	}
	names := map[string]string{}
	filterExpr := ""
	if filter.Status != "" {
		filterExpr = "#s = :status"
		names["#s"] = "status"
		input.ExpressionAttributeValues[":status"] = &types.AttributeValueMemberS{Value: filter.Status}
	}
	if filter.CategoryID != "" {
		if filterExpr != "" {
			filterExpr += " AND "
		}
		filterExpr += "category_id = :cat"
		input.ExpressionAttributeValues[":cat"] = &types.AttributeValueMemberS{Value: filter.CategoryID}
	}
	if filter.TagID != "" {
		if filterExpr != "" {
			filterExpr += " AND "
		}
		filterExpr += "contains(tag_ids, :tag)"
		input.ExpressionAttributeValues[":tag"] = &types.AttributeValueMemberS{Value: filter.TagID}
	}
	if filterExpr != "" {
		input.FilterExpression = aws.String(filterExpr)
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}
	if cursor != "" {
		noteID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"note_id": &types.AttributeValueMemberS{Value: noteID},
			"user_id": &types.AttributeValueMemberS{Value: userID},
		}
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var notes []domain.Note
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &notes); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["note_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return notes, nextCursor, nil
}

func (r *NoteRepo) Update(ctx context.Context, noteID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(withUpdatedAt(updates))
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("note_id", noteID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *NoteRepo) HardDelete(ctx context.Context, noteID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("note_id", noteID),
	})
	return err
}
