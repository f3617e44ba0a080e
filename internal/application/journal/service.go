package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/pkg/id"
	"github.com/notekeep-api/internal/pkg/validate"
)

const (
	fieldContent = "content"
	fieldMood    = "mood"
)

type UpdateEntryRequest struct {
	Content *string `json:"content" validate:"omitempty,min=1"`
	Mood    *string `json:"mood"`
}

// One entry per user per calendar day. Create conflicts if the day is taken.
type Service interface {
	Create(ctx context.Context, userID string, req domain.JournalEntryInput) (*domain.JournalEntry, error)
	List(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error)
	GetByDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error)
	Update(ctx context.Context, userID, entryID string, req UpdateEntryRequest) (*domain.JournalEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
}

type journalStore interface {
	Put(ctx context.Context, e *domain.JournalEntry) error
	Get(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	GetByUserDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error)
	ListByUser(ctx context.Context, userID string, limit int32) ([]domain.JournalEntry, error)
	Update(ctx context.Context, entryID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, entryID string) error
}

type service struct {
	repo journalStore
}

func NewService(repo journalStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.JournalEntryInput) (*domain.JournalEntry, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	_, err := s.repo.GetByUserDate(ctx, userID, req.Date)
	if err == nil {
		return nil, fmt.Errorf("an entry for %s already exists: %w", req.Date, domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	e := &domain.JournalEntry{
		EntryID:   id.New(),
		UserID:    userID,
		Date:      req.Date,
		Content:   req.Content,
		Mood:      req.Mood,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ListByUser(ctx, userID, int32(limit))
}

func (s *service) GetByDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error) {
	if err := validate.Var(date, "required,datetime=2006-01-02"); err != nil {
		return nil, err
	}
	return s.repo.GetByUserDate(ctx, userID, date)
}

func (s *service) Update(ctx context.Context, userID, entryID string, req UpdateEntryRequest) (*domain.JournalEntry, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	e, err := s.repo.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	updates := map[string]interface{}{}
	if req.Content != nil {
		updates[fieldContent] = *req.Content
	}
	if req.Mood != nil {
		updates[fieldMood] = *req.Mood
	}
	if len(updates) == 0 {
		return e, nil
	}
	if err := s.repo.Update(ctx, entryID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, entryID)
}

func (s *service) Delete(ctx context.Context, userID, entryID string) error {
	e, err := s.repo.Get(ctx, entryID)
	if err != nil {
		return err
	}
	if e.UserID != userID {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return s.repo.HardDelete(ctx, entryID)
}
