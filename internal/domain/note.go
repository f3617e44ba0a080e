package domain

import "time"

// Note statuses.
const (
	NoteStatusDraft     = "DRAFT"
	NoteStatusPublished = "PUBLISHED"
	NoteStatusArchived  = "ARCHIVED"
)

type Note struct {
	NoteID     string    `json:"id" dynamodbav:"note_id"`
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	Title      string    `json:"title" dynamodbav:"title"`
	Content    string    `json:"content" dynamodbav:"content"`
	Status     string    `json:"status" dynamodbav:"status"`
	CategoryID *string   `json:"category_id,omitempty" dynamodbav:"category_id"`
	TagIDs     []string  `json:"tag_ids" dynamodbav:"tag_ids"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateNoteRequest struct {
	Title      string   `json:"title" validate:"required,min=1"`
	Content    string   `json:"content"`
	Status     string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	CategoryID *string  `json:"category_id"`
	TagIDs     []string `json:"tag_ids"`
}

type UpdateNoteRequest struct {
	Title      *string   `json:"title" validate:"omitempty,min=1"`
	Content    *string   `json:"content"`
	Status     *string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	CategoryID *string   `json:"category_id"`
	TagIDs     *[]string `json:"tag_ids"`
}

// NoteFilter narrows a note listing. Zero values mean "no filter".
type NoteFilter struct {
	Status     string
	CategoryID string
	TagID      string
}
