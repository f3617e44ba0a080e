package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/notekeep-api/internal/domain"
)

// VerificationTokenRepo manages password-reset, email-verification and
// magic-link tokens. PK: token (globally unique random hex).
// ExpiresAt doubles as the table's TTL attribute; reads still check it
// because TTL deletion is lazy.
type VerificationTokenRepo struct {
	client     *dynamodb.Client
	tableName  string
	usersTable string
}

func NewVerificationTokenRepo(client *dynamodb.Client, tableName, usersTable string) *VerificationTokenRepo {
	return &VerificationTokenRepo{client: client, tableName: tableName, usersTable: usersTable}
}

func (r *VerificationTokenRepo) Put(ctx context.Context, v *domain.VerificationToken) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *VerificationTokenRepo) Get(ctx context.Context, token string) (*domain.VerificationToken, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token", token),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("token not found: %w", domain.ErrNotFound)
	}
	var v domain.VerificationToken
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Consume deletes the token with an attribute_exists condition, so of two
// concurrent consumers exactly one succeeds. The loser gets ErrInvalidToken.
func (r *VerificationTokenRepo) Consume(ctx context.Context, token string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(r.tableName),
		Key:                      strKey("token", token),
		ConditionExpression:      aws.String("attribute_exists(#t)"),
		ExpressionAttributeNames: map[string]string{"#t": "token"},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("token already consumed: %w", domain.ErrInvalidToken)
		}
		return err
	}
	return nil
}

// ConsumeWithPasswordUpdate commits the user's new password hash and the
// token deletion as a single TransactWriteItems call. The delete carries an
// attribute_exists condition, so a token can be consumed at most once even
// under concurrent requests, and a password update can never land without
// the token going away with it.
func (r *VerificationTokenRepo) ConsumeWithPasswordUpdate(ctx context.Context, userID, passwordHash, token string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:        aws.String(r.usersTable),
					Key:              strKey("user_id", userID),
					UpdateExpression: aws.String("SET #ph = :ph, #ua = :ua"),
					ExpressionAttributeNames: map[string]string{
						"#ph": fieldPasswordHash,
						"#ua": fieldUpdatedAt,
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":ph": &types.AttributeValueMemberS{Value: passwordHash},
						":ua": &types.AttributeValueMemberS{Value: now},
					},
				},
			},
			{
				Delete: &types.Delete{
					TableName:                aws.String(r.tableName),
					Key:                      strKey("token", token),
					ConditionExpression:      aws.String("attribute_exists(#t)"),
					ExpressionAttributeNames: map[string]string{"#t": "token"},
				},
			},
		},
	})
	if err != nil {
		if isConditionalCancellation(err) {
			return fmt.Errorf("token already consumed: %w", domain.ErrInvalidToken)
		}
		return err
	}
	return nil
}

// isConditionalCancellation reports whether a transaction was cancelled by a
// ConditionalCheckFailed reason (as opposed to a throttling or capacity error).
func isConditionalCancellation(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
