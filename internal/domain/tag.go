package domain

import "time"

// Tags are shared across users; names are unique.
type Tag struct {
	TagID     string    `json:"id" dynamodbav:"tag_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Color     string    `json:"color" dynamodbav:"color"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type TagInput struct {
	Name  string `json:"name" validate:"required,min=1"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}
