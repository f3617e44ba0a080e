package article

import (
	"context"
	"fmt"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/pkg/id"
	"github.com/notekeep-api/internal/pkg/validate"
)

const (
	fieldTitle     = "title"
	fieldContent   = "content"
	fieldPublished = "published"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateArticleRequest) (*domain.Article, error)
	List(ctx context.Context, userID string, limit int, cursor string) ([]domain.Article, string, error)
	Get(ctx context.Context, userID, articleID string) (*domain.Article, error)
	Update(ctx context.Context, userID, articleID string, req domain.UpdateArticleRequest) (*domain.Article, error)
	Delete(ctx context.Context, userID, articleID string) error
}

type articleStore interface {
	Put(ctx context.Context, a *domain.Article) error
	Get(ctx context.Context, articleID string) (*domain.Article, error)
	QueryByUser(ctx context.Context, userID string, limit int32, cursor string) ([]domain.Article, string, error)
	Update(ctx context.Context, articleID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, articleID string) error
}

type service struct {
	repo articleStore
}

func NewService(repo articleStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateArticleRequest) (*domain.Article, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := &domain.Article{
		ArticleID: id.New(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Published: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context, userID string, limit int, cursor string) ([]domain.Article, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.QueryByUser(ctx, userID, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, userID, articleID string) (*domain.Article, error) {
	a, err := s.repo.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, userID, articleID string, req domain.UpdateArticleRequest) (*domain.Article, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, articleID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Content != nil {
		updates[fieldContent] = *req.Content
	}
	if req.Published != nil {
		updates[fieldPublished] = *req.Published
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, articleID)
	}
	if err := s.repo.Update(ctx, articleID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, articleID)
}

func (s *service) Delete(ctx context.Context, userID, articleID string) error {
	if _, err := s.Get(ctx, userID, articleID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, articleID)
}
