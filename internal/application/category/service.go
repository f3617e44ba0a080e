package category

import (
	"context"
	"fmt"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/pkg/id"
	"github.com/notekeep-api/internal/pkg/validate"
)

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldColor       = "color"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CategoryInput) (*domain.Category, error)
	List(ctx context.Context, userID string) ([]domain.Category, error)
	Get(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	Update(ctx context.Context, userID, categoryID string, req domain.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, userID, categoryID string) error
}

type categoryStore interface {
	Put(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, categoryID string) error
}

type service struct {
	repo categoryStore
}

func NewService(repo categoryStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CategoryInput) (*domain.Category, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Category{
		CategoryID:  id.New(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	c, err := s.repo.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, userID, categoryID string, req domain.CategoryInput) (*domain.Category, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		fieldName:        req.Name,
		fieldDescription: req.Description,
		fieldColor:       req.Color,
	}
	if err := s.repo.Update(ctx, categoryID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, categoryID)
}

func (s *service) Delete(ctx context.Context, userID, categoryID string) error {
	if _, err := s.Get(ctx, userID, categoryID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, categoryID)
}
