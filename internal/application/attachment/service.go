package attachment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/pkg/id"
)

type UploadInput struct {
	NoteID      string
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	UploaderID  string
}

// Attachments are note-scoped: every operation first resolves the note and
// checks it belongs to the requester.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.Attachment, error)
	ListByNote(ctx context.Context, userID, noteID string) ([]domain.Attachment, error)
	Download(ctx context.Context, userID, attachmentID string) (io.ReadCloser, *domain.Attachment, error)
	Delete(ctx context.Context, userID, attachmentID string) error
}

type attachmentStore interface {
	Put(ctx context.Context, a *domain.Attachment) error
	Get(ctx context.Context, attachmentID string) (*domain.Attachment, error)
	ListByNote(ctx context.Context, noteID string) ([]domain.Attachment, error)
	HardDelete(ctx context.Context, attachmentID string) error
}

type noteStore interface {
	Get(ctx context.Context, noteID string) (*domain.Note, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	objects objectStore
	repo    attachmentStore
	notes   noteStore
}

func NewService(objects objectStore, repo attachmentStore, notes noteStore) Service {
	return &service{objects: objects, repo: repo, notes: notes}
}

func (s *service) checkNoteOwner(ctx context.Context, userID, noteID string) error {
	n, err := s.notes.Get(ctx, noteID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return nil
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.Attachment, error) {
	if err := s.checkNoteOwner(ctx, input.UploaderID, input.NoteID); err != nil {
		return nil, err
	}
	safeName := sanitizeFilename(input.Filename)
	key := fmt.Sprintf("attachments/%s/%s", input.NoteID, safeName)

	hasher := sha256.New()
	tee := io.TeeReader(input.Reader, hasher)
	if _, err := s.objects.Upload(ctx, key, tee, input.ContentType); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.Attachment{
		AttachmentID: id.New(),
		NoteID:       input.NoteID,
		UserID:       input.UploaderID,
		Object:       key,
		Name:         safeName,
		Size:         input.Size,
		ContentType:  input.ContentType,
		Hash:         hex.EncodeToString(hasher.Sum(nil)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListByNote(ctx context.Context, userID, noteID string) ([]domain.Attachment, error) {
	if err := s.checkNoteOwner(ctx, userID, noteID); err != nil {
		return nil, err
	}
	return s.repo.ListByNote(ctx, noteID)
}

func (s *service) Download(ctx context.Context, userID, attachmentID string) (io.ReadCloser, *domain.Attachment, error) {
	a, err := s.repo.Get(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkNoteOwner(ctx, userID, a.NoteID); err != nil {
		return nil, nil, err
	}
	rc, err := s.objects.Download(ctx, a.Object)
	if err != nil {
		return nil, nil, err
	}
	return rc, a, nil
}

func (s *service) Delete(ctx context.Context, userID, attachmentID string) error {
	a, err := s.repo.Get(ctx, attachmentID)
	if err != nil {
		return err
	}
	if err := s.checkNoteOwner(ctx, userID, a.NoteID); err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, a.Object); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, attachmentID)
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}
