package domain

import "time"

type Task struct {
	TaskID    string     `json:"id" dynamodbav:"task_id"`
	UserID    string     `json:"user_id" dynamodbav:"user_id"`
	ProjectID *string    `json:"project_id,omitempty" dynamodbav:"project_id"`
	Title     string     `json:"title" dynamodbav:"title"`
	Done      bool       `json:"done" dynamodbav:"done"`
	DueDate   *time.Time `json:"due_date,omitempty" dynamodbav:"due_date"`
	CreatedAt time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateTaskRequest struct {
	Title     string  `json:"title" validate:"required,min=1"`
	ProjectID *string `json:"project_id"`
	DueDate   *string `json:"due_date"` // expected format: YYYY-MM-DD
}

type UpdateTaskRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1"`
	ProjectID *string `json:"project_id"`
	Done      *bool   `json:"done"`
	DueDate   *string `json:"due_date"` // expected format: YYYY-MM-DD
}
