package domain

import "time"

type Category struct {
	CategoryID  string    `json:"id" dynamodbav:"category_id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	Color       string    `json:"color" dynamodbav:"color"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}
