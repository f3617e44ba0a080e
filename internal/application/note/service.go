package note

import (
	"context"
	"fmt"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/pkg/id"
	"github.com/notekeep-api/internal/pkg/validate"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldTitle      = "title"
	fieldContent    = "content"
	fieldStatus     = "status"
	fieldCategoryID = "category_id"
	fieldTagIDs     = "tag_ids"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateNoteRequest) (*domain.Note, error)
	List(ctx context.Context, userID string, filter domain.NoteFilter, limit int, cursor string) ([]domain.Note, string, error)
	Get(ctx context.Context, userID, noteID string) (*domain.Note, error)
	Update(ctx context.Context, userID, noteID string, req domain.UpdateNoteRequest) (*domain.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}

type noteStore interface {
	Put(ctx context.Context, n *domain.Note) error
	Get(ctx context.Context, noteID string) (*domain.Note, error)
	QueryByUser(ctx context.Context, userID string, filter domain.NoteFilter, limit int32, cursor string) ([]domain.Note, string, error)
	Update(ctx context.Context, noteID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, noteID string) error
}

type service struct {
	repo noteStore
}

func NewService(repo noteStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateNoteRequest) (*domain.Note, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = domain.NoteStatusDraft
	}
	tagIDs := req.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}
	now := time.Now().UTC()
	n := &domain.Note{
		NoteID:     id.New(),
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		Status:     status,
		CategoryID: req.CategoryID,
		TagIDs:     tagIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) List(ctx context.Context, userID string, filter domain.NoteFilter, limit int, cursor string) ([]domain.Note, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.QueryByUser(ctx, userID, filter, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	n, err := s.repo.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return n, nil
}

func (s *service) Update(ctx context.Context, userID, noteID string, req domain.UpdateNoteRequest) (*domain.Note, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, noteID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Content != nil {
		updates[fieldContent] = *req.Content
	}
	if req.Status != nil {
		updates[fieldStatus] = *req.Status
	}
	if req.CategoryID != nil {
		updates[fieldCategoryID] = *req.CategoryID
	}
	if req.TagIDs != nil {
		updates[fieldTagIDs] = *req.TagIDs
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, noteID)
	}
	if err := s.repo.Update(ctx, noteID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, noteID)
}

func (s *service) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.Get(ctx, userID, noteID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, noteID)
}
