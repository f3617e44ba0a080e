package domain

import "time"

type Project struct {
	ProjectID   string    `json:"id" dynamodbav:"project_id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type ProjectInput struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}
