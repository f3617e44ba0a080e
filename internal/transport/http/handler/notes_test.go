package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/notekeep-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockNoteSvc struct{ mock.Mock }

func (m *mockNoteSvc) Create(ctx context.Context, userID string, req domain.CreateNoteRequest) (*domain.Note, error) {
	args := m.Called(ctx, userID, req)
	if n, _ := args.Get(0).(*domain.Note); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteSvc) List(ctx context.Context, userID string, filter domain.NoteFilter, limit int, cursor string) ([]domain.Note, string, error) {
	args := m.Called(ctx, userID, filter, limit, cursor)
	return args.Get(0).([]domain.Note), args.String(1), args.Error(2)
}

func (m *mockNoteSvc) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if n, _ := args.Get(0).(*domain.Note); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteSvc) Update(ctx context.Context, userID, noteID string, req domain.UpdateNoteRequest) (*domain.Note, error) {
	args := m.Called(ctx, userID, noteID, req)
	if n, _ := args.Get(0).(*domain.Note); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteSvc) Delete(ctx context.Context, userID, noteID string) error {
	return m.Called(ctx, userID, noteID).Error(0)
}

// --- tests ---

func TestNoteCreate_MissingClaims(t *testing.T) {
	h := NewNoteHandler(&mockNoteSvc{})
	body, _ := json.Marshal(domain.CreateNoteRequest{Title: "groceries"})
	r := httptest.NewRequest(http.MethodPost, "/v1/notes", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Create(rr, r) // called directly, no claims in context
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestNoteCreate_HappyPath(t *testing.T) {
	svc := &mockNoteSvc{}
	svc.On("Create", mock.Anything, "u1", mock.Anything).
		Return(&domain.Note{NoteID: "n1", UserID: "u1", Title: "groceries", Status: domain.NoteStatusDraft}, nil)
	h := NewNoteHandler(svc)
	p := newTestJWTProvider(t)

	body, _ := json.Marshal(domain.CreateNoteRequest{Title: "groceries"})
	r := bearerReq(t, p, http.MethodPost, "/v1/notes", "u1", body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Create), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	var resp domain.Note
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "n1", resp.NoteID)
	assert.Equal(t, domain.NoteStatusDraft, resp.Status)
	svc.AssertExpectations(t)
}

func TestNoteCreate_ValidationFailure(t *testing.T) {
	svc := &mockNoteSvc{}
	svc.On("Create", mock.Anything, "u1", mock.Anything).
		Return(nil, fmt.Errorf("title is required: %w", domain.ErrValidation))
	h := NewNoteHandler(svc)
	p := newTestJWTProvider(t)

	body, _ := json.Marshal(domain.CreateNoteRequest{})
	r := bearerReq(t, p, http.MethodPost, "/v1/notes", "u1", body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Create), rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNoteGet_OtherOwnerForbidden(t *testing.T) {
	svc := &mockNoteSvc{}
	svc.On("Get", mock.Anything, "u1", "n2").
		Return(nil, fmt.Errorf("access denied: %w", domain.ErrForbidden))
	h := NewNoteHandler(svc)
	p := newTestJWTProvider(t)

	r := withChiID(bearerReq(t, p, http.MethodGet, "/v1/notes/n2", "u1", nil), "n2")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Get), rr, r)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestNoteList_PassesFilterAndPagination(t *testing.T) {
	svc := &mockNoteSvc{}
	wantFilter := domain.NoteFilter{Status: domain.NoteStatusPublished, CategoryID: "c1"}
	svc.On("List", mock.Anything, "u1", wantFilter, 10, "abc").
		Return([]domain.Note{{NoteID: "n1"}}, "next123", nil)
	h := NewNoteHandler(svc)
	p := newTestJWTProvider(t)

	r := bearerReq(t, p, http.MethodGet, "/v1/notes?status=PUBLISHED&category_id=c1&limit=10&cursor=abc", "u1", nil)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.List), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data       []domain.Note `json:"data"`
		NextCursor string        `json:"next_cursor"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "next123", resp.NextCursor)
	svc.AssertExpectations(t)
}

func TestNoteDelete_NotFound(t *testing.T) {
	svc := &mockNoteSvc{}
	svc.On("Delete", mock.Anything, "u1", "missing").
		Return(fmt.Errorf("note not found: %w", domain.ErrNotFound))
	h := NewNoteHandler(svc)
	p := newTestJWTProvider(t)

	r := withChiID(bearerReq(t, p, http.MethodDelete, "/v1/notes/missing", "u1", nil), "missing")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Delete), rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
