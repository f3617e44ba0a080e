package domain

import "time"

// Attachment is a file stored in S3 and linked to a note.
type Attachment struct {
	AttachmentID string    `json:"id" dynamodbav:"attachment_id"`
	NoteID       string    `json:"note_id" dynamodbav:"note_id"`
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	Object       string    `json:"-" dynamodbav:"object"`
	Name         string    `json:"name" dynamodbav:"name"`
	Size         int64     `json:"size" dynamodbav:"size"`
	ContentType  string    `json:"content_type" dynamodbav:"content_type"`
	Hash         string    `json:"hash" dynamodbav:"hash"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}
