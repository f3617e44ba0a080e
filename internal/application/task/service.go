package task

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
	fieldProjectID = "project_id"
	fieldDone      = "done"
	fieldDueDate   = "due_date"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateTaskRequest) (*domain.Task, error)
	List(ctx context.Context, userID, projectID string, limit int, cursor string) ([]domain.Task, string, error)
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID string, req domain.UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type taskStore interface {
	Put(ctx context.Context, t *domain.Task) error
	Get(ctx context.Context, taskID string) (*domain.Task, error)
	QueryByUser(ctx context.Context, userID, projectID string, limit int32, cursor string) ([]domain.Task, string, error)
	Update(ctx context.Context, taskID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, taskID string) error
}

type service struct {
	repo taskStore
}

func NewService(repo taskStore) Service {
	return &service{repo: repo}
}

func parseDueDate(raw string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("due_date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	return &t, nil
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateTaskRequest) (*domain.Task, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var due *time.Time
	if req.DueDate != nil {
		var err error
		if due, err = parseDueDate(*req.DueDate); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	t := &domain.Task{
		TaskID:    id.New(),
		UserID:    userID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Done:      false,
		DueDate:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, userID, projectID string, limit int, cursor string) ([]domain.Task, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.QueryByUser(ctx, userID, projectID, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	t, err := s.repo.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, userID, taskID string, req domain.UpdateTaskRequest) (*domain.Task, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.ProjectID != nil {
		updates[fieldProjectID] = *req.ProjectID
	}
	if req.Done != nil {
		updates[fieldDone] = *req.Done
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		updates[fieldDueDate] = *due
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, taskID)
	}
	if err := s.repo.Update(ctx, taskID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, taskID)
}

func (s *service) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, taskID)
}
