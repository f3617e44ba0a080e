package project

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
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.ProjectInput) (*domain.Project, error)
	List(ctx context.Context, userID string) ([]domain.Project, error)
	Get(ctx context.Context, userID, projectID string) (*domain.Project, error)
	Update(ctx context.Context, userID, projectID string, req domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
}

type projectStore interface {
	Put(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, projectID string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, projectID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, projectID string) error
}

type service struct {
	repo projectStore
}

func NewService(repo projectStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.ProjectInput) (*domain.Project, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &domain.Project{
		ProjectID:   id.New(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	p, err := s.repo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, userID, projectID string, req domain.ProjectInput) (*domain.Project, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, projectID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		fieldName:        req.Name,
		fieldDescription: req.Description,
	}
	if err := s.repo.Update(ctx, projectID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, projectID)
}

func (s *service) Delete(ctx context.Context, userID, projectID string) error {
	if _, err := s.Get(ctx, userID, projectID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, projectID)
}
