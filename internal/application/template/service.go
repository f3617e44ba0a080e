package template

import (
	"context"
	"fmt"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/pkg/id"
	"github.com/notekeep-api/internal/pkg/validate"
)

const (
	fieldName    = "name"
	fieldContent = "content"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.TemplateInput) (*domain.Template, error)
	List(ctx context.Context, userID string) ([]domain.Template, error)
	Get(ctx context.Context, userID, templateID string) (*domain.Template, error)
	Update(ctx context.Context, userID, templateID string, req domain.TemplateInput) (*domain.Template, error)
	Delete(ctx context.Context, userID, templateID string) error
}

type templateStore interface {
	Put(ctx context.Context, t *domain.Template) error
	Get(ctx context.Context, templateID string) (*domain.Template, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Template, error)
	Update(ctx context.Context, templateID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, templateID string) error
}

type service struct {
	repo templateStore
}

func NewService(repo templateStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.TemplateInput) (*domain.Template, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := &domain.Template{
		TemplateID: id.New(),
		UserID:     userID,
		Name:       req.Name,
		Content:    req.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Template, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, templateID string) (*domain.Template, error) {
	t, err := s.repo.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, userID, templateID string, req domain.TemplateInput) (*domain.Template, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, templateID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		fieldName:    req.Name,
		fieldContent: req.Content,
	}
	if err := s.repo.Update(ctx, templateID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, templateID)
}

func (s *service) Delete(ctx context.Context, userID, templateID string) error {
	if _, err := s.Get(ctx, userID, templateID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, templateID)
}
