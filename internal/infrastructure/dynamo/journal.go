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

// JournalRepo provides typed DynamoDB operations for the journal_entries table.
// The user_id-date-index GSI (user_id hash, date range) makes per-day lookups
// and chronological listings cheap.
type JournalRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewJournalRepo(client *dynamodb.Client, tableName string) *JournalRepo {
	return &JournalRepo{client: client, tableName: tableName}
}

func (r *JournalRepo) Put(ctx context.Context, e *domain.JournalEntry) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *JournalRepo) Get(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("entry_id", entryID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("journal entry not found: %w", domain.ErrNotFound)
	}
	var e domain.JournalEntry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByUserDate returns the user's entry for a calendar day (YYYY-MM-DD).
func (r *JournalRepo) GetByUserDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("user_id-date-index"),
		KeyConditionExpression:    aws.String("user_id = :uid AND #d = :d"),
		ExpressionAttributeNames:  map[string]string{"#d": "date"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
			":d":   &types.AttributeValueMemberS{Value: date},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("journal entry not found: %w", domain.ErrNotFound)
	}
	var e domain.JournalEntry
	if err := attributevalue.UnmarshalMap(out.Items[0], &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByUser returns the user's entries, most recent day first.
func (r *JournalRepo) ListByUser(ctx context.Context, userID string, limit int32) ([]domain.JournalEntry, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-date-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, err
	}
	var entries []domain.JournalEntry
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *JournalRepo) Update(ctx context.Context, entryID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(withUpdatedAt(updates))
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("entry_id", entryID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *JournalRepo) HardDelete(ctx context.Context, entryID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("entry_id", entryID),
	})
	return err
}
