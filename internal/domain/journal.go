package domain

import "time"

// JournalEntry is a daily journal note. Date is the calendar day in
// YYYY-MM-DD form; a user has at most one entry per day.
type JournalEntry struct {
	EntryID   string    `json:"id" dynamodbav:"entry_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Date      string    `json:"date" dynamodbav:"date"`
	Content   string    `json:"content" dynamodbav:"content"`
	Mood      *string   `json:"mood,omitempty" dynamodbav:"mood"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type JournalEntryInput struct {
	Date    string  `json:"date" validate:"required,datetime=2006-01-02"`
	Content string  `json:"content" validate:"required"`
	Mood    *string `json:"mood"`
}
