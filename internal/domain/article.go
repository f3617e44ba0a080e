package domain

import "time"

// Article is a long-form knowledge-base document, distinct from quick notes.
type Article struct {
	ArticleID string    `json:"id" dynamodbav:"article_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	Content   string    `json:"content" dynamodbav:"content"`
	Published bool      `json:"published" dynamodbav:"published"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateArticleRequest struct {
	Title   string `json:"title" validate:"required,min=1"`
	Content string `json:"content"`
}

type UpdateArticleRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}
