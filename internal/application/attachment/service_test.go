package attachment

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/notekeep-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAttachmentStore struct{ mock.Mock }

func (m *mockAttachmentStore) Put(ctx context.Context, a *domain.Attachment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockAttachmentStore) Get(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	args := m.Called(ctx, attachmentID)
	if a, _ := args.Get(0).(*domain.Attachment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAttachmentStore) ListByNote(ctx context.Context, noteID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, noteID)
	list, _ := args.Get(0).([]domain.Attachment)
	return list, args.Error(1)
}
func (m *mockAttachmentStore) HardDelete(ctx context.Context, attachmentID string) error {
	return m.Called(ctx, attachmentID).Error(0)
}

type mockNoteStore struct{ mock.Mock }

func (m *mockNoteStore) Get(ctx context.Context, noteID string) (*domain.Note, error) {
	args := m.Called(ctx, noteID)
	if n, _ := args.Get(0).(*domain.Note); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	// drain so the sha256 tee sees the full payload
	_, _ = io.Copy(io.Discard, r)
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if rc, _ := args.Get(0).(io.ReadCloser); rc != nil {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestUpload_SanitizesFilenameAndHashes(t *testing.T) {
	repo := &mockAttachmentStore{}
	notes := &mockNoteStore{}
	objects := &mockObjectStore{}

	notes.On("Get", mock.Anything, "n1").Return(&domain.Note{NoteID: "n1", UserID: "u1"}, nil)
	objects.On("Upload", mock.Anything, "attachments/n1/___etc_passwd", "text/plain").
		Return("s3://bucket/attachments/n1/___etc_passwd", nil)
	repo.On("Put", mock.Anything, mock.MatchedBy(func(a *domain.Attachment) bool {
		return a.NoteID == "n1" && a.UserID == "u1" && len(a.Hash) == 64
	})).Return(nil)

	svc := NewService(objects, repo, notes)
	a, err := svc.Upload(context.Background(), UploadInput{
		NoteID:      "n1",
		Reader:      bytes.NewReader([]byte("hello")),
		Filename:    "../../etc/passwd",
		ContentType: "text/plain",
		Size:        5,
		UploaderID:  "u1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, a.AttachmentID)
	repo.AssertExpectations(t)
}

func TestUpload_OtherUsersNote_Forbidden(t *testing.T) {
	notes := &mockNoteStore{}
	notes.On("Get", mock.Anything, "n1").Return(&domain.Note{NoteID: "n1", UserID: "other"}, nil)

	svc := NewService(&mockObjectStore{}, &mockAttachmentStore{}, notes)
	_, err := svc.Upload(context.Background(), UploadInput{
		NoteID: "n1", Reader: bytes.NewReader(nil), Filename: "a.txt", UploaderID: "u1",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestDelete_RemovesObjectThenRecord(t *testing.T) {
	repo := &mockAttachmentStore{}
	notes := &mockNoteStore{}
	objects := &mockObjectStore{}

	repo.On("Get", mock.Anything, "a1").Return(&domain.Attachment{
		AttachmentID: "a1", NoteID: "n1", Object: "attachments/n1/a.txt",
	}, nil)
	notes.On("Get", mock.Anything, "n1").Return(&domain.Note{NoteID: "n1", UserID: "u1"}, nil)
	objects.On("Delete", mock.Anything, "attachments/n1/a.txt").Return(nil)
	repo.On("HardDelete", mock.Anything, "a1").Return(nil)

	svc := NewService(objects, repo, notes)
	err := svc.Delete(context.Background(), "u1", "a1")

	require.NoError(t, err)
	objects.AssertExpectations(t)
	repo.AssertExpectations(t)
}
