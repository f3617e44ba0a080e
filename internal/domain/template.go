package domain

import "time"

// Template is a reusable note body a user can instantiate new notes from.
type Template struct {
	TemplateID string    `json:"id" dynamodbav:"template_id"`
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	Content    string    `json:"content" dynamodbav:"content"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type TemplateInput struct {
	Name    string `json:"name" validate:"required,min=1"`
	Content string `json:"content"`
}
