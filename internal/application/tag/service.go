package tag

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
	fieldName  = "name"
	fieldColor = "color"
)

// Tags are shared across users, so there is no ownership check here. Name
// uniqueness is enforced at create time.
type Service interface {
	Create(ctx context.Context, req domain.TagInput) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Get(ctx context.Context, tagID string) (*domain.Tag, error)
	Update(ctx context.Context, tagID string, req domain.TagInput) (*domain.Tag, error)
	Delete(ctx context.Context, tagID string) error
}

type tagStore interface {
	Put(ctx context.Context, t *domain.Tag) error
	Get(ctx context.Context, tagID string) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	Scan(ctx context.Context) ([]domain.Tag, error)
	Update(ctx context.Context, tagID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, tagID string) error
}

type service struct {
	repo tagStore
}

func NewService(repo tagStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.TagInput) (*domain.Tag, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	_, err := s.repo.GetByName(ctx, req.Name)
	if err == nil {
		return nil, fmt.Errorf("tag %q already exists: %w", req.Name, domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	t := &domain.Tag{
		TagID:     id.New(),
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context) ([]domain.Tag, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, tagID string) (*domain.Tag, error) {
	return s.repo.Get(ctx, tagID)
}

func (s *service) Update(ctx context.Context, tagID string, req domain.TagInput) (*domain.Tag, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, tagID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		fieldName:  req.Name,
		fieldColor: req.Color,
	}
	if err := s.repo.Update(ctx, tagID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, tagID)
}

func (s *service) Delete(ctx context.Context, tagID string) error {
	if _, err := s.repo.Get(ctx, tagID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, tagID)
}
