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

// ArticleRepo provides typed DynamoDB operations for the articles table.
type ArticleRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewArticleRepo(client *dynamodb.Client, tableName string) *ArticleRepo {
	return &ArticleRepo{client: client, tableName: tableName}
}

func (r *ArticleRepo) Put(ctx context.Context, a *domain.Article) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ArticleRepo) Get(ctx context.Context, articleID string) (*domain.Article, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("article_id", articleID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("article not found: %w", domain.ErrNotFound)
	}
	var a domain.Article
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// QueryByUser returns a page of the user's articles.
func (r *ArticleRepo) QueryByUser(ctx context.Context, userID string, limit int32, cursor string) ([]domain.Article, string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		Limit: aws.Int32(limit),
	}
	if cursor != "" {
		articleID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"article_id": &types.AttributeValueMemberS{Value: articleID},
			"user_id":    &types.AttributeValueMemberS{Value: userID},
		}
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var articles []domain.Article
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &articles); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["article_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return articles, nextCursor, nil
}

func (r *ArticleRepo) Update(ctx context.Context, articleID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(withUpdatedAt(updates))
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("article_id", articleID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ArticleRepo) HardDelete(ctx context.Context, articleID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("article_id", articleID),
	})
	return err
}
