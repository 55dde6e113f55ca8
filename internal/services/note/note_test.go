package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"database/sql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/todo-tracker/internal/models"
	services "github.com/magabrotheeeer/todo-tracker/internal/services/note"
)

// Мок для NoteRepository
type NoteRepoMock struct {
	mock.Mock
}

func (m *NoteRepoMock) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *NoteRepoMock) ListNotes(ctx context.Context, userUID string) ([]*models.Note, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *NoteRepoMock) UpdateNote(ctx context.Context, id, userUID string, upd models.NoteUpdate) (*models.Note, error) {
	args := m.Called(ctx, id, userUID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *NoteRepoMock) RemoveNote(ctx context.Context, id, userUID string) (int, error) {
	args := m.Called(ctx, id, userUID)
	return args.Int(0), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNoteService_Create(t *testing.T) {
	tests := []struct {
		name       string
		userUID    string
		text       string
		setupMocks func(r *NoteRepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name:    "successful creation",
			userUID: "user-1",
			text:    "  buy milk  ",
			setupMocks: func(r *NoteRepoMock, c *CacheMock) {
				r.On("CreateNote", mock.Anything, mock.MatchedBy(func(n models.Note) bool {
					return n.Text == "buy milk" && n.UserUID == "user-1" && !n.Done && n.ID != ""
				})).Return(&models.Note{
					ID:      "note-1",
					Text:    "buy milk",
					UserUID: "user-1",
				}, nil).Once()
				c.On("Invalidate", "notes:user-1").Return(nil).Once()
			},
		},
		{
			name:       "empty text",
			userUID:    "user-1",
			text:       "   ",
			setupMocks: func(_ *NoteRepoMock, _ *CacheMock) {},
			wantErr:    services.ErrEmptyText,
		},
		{
			name:    "repository error",
			userUID: "user-1",
			text:    "buy milk",
			setupMocks: func(r *NoteRepoMock, _ *CacheMock) {
				r.On("CreateNote", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(NoteRepoMock)
			cache := new(CacheMock)
			svc := services.NewNoteService(repo, cache, discardLogger())

			tt.setupMocks(repo, cache)

			note, err := svc.Create(context.Background(), tt.userUID, tt.text)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, note)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "buy milk", note.Text)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestNoteService_List(t *testing.T) {
	notes := []*models.Note{
		{ID: "note-2", Text: "newest", UserUID: "user-1"},
		{ID: "note-1", Text: "oldest", UserUID: "user-1"},
	}

	tests := []struct {
		name       string
		setupMocks func(r *NoteRepoMock, c *CacheMock)
		wantLen    int
		wantErr    bool
	}{
		{
			name: "cache miss reads repository and fills cache",
			setupMocks: func(r *NoteRepoMock, c *CacheMock) {
				c.On("Get", "notes:user-1", mock.Anything).Return(false, nil).Once()
				r.On("ListNotes", mock.Anything, "user-1").Return(notes, nil).Once()
				c.On("Set", "notes:user-1", notes, time.Hour).Return(nil).Once()
			},
			wantLen: 2,
		},
		{
			name: "cache hit skips repository",
			setupMocks: func(_ *NoteRepoMock, c *CacheMock) {
				c.On("Get", "notes:user-1", mock.Anything).
					Run(func(args mock.Arguments) {
						dst := args.Get(1).(*[]*models.Note)
						*dst = notes
					}).Return(true, nil).Once()
			},
			wantLen: 2,
		},
		{
			name: "cache error falls back to repository",
			setupMocks: func(r *NoteRepoMock, c *CacheMock) {
				c.On("Get", "notes:user-1", mock.Anything).Return(false, errors.New("redis down")).Once()
				r.On("ListNotes", mock.Anything, "user-1").Return(notes, nil).Once()
				c.On("Set", "notes:user-1", notes, time.Hour).Return(errors.New("redis down")).Once()
			},
			wantLen: 2,
		},
		{
			name: "repository error",
			setupMocks: func(r *NoteRepoMock, c *CacheMock) {
				c.On("Get", "notes:user-1", mock.Anything).Return(false, nil).Once()
				r.On("ListNotes", mock.Anything, "user-1").Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(NoteRepoMock)
			cache := new(CacheMock)
			svc := services.NewNoteService(repo, cache, discardLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.List(context.Background(), "user-1")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, got, tt.wantLen)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestNoteService_Update(t *testing.T) {
	noteID := "8d7f54cc-0f65-4a8e-9b9d-2f3c4a5b6c7d"
	text := "  updated text  "
	done := true

	tests := []struct {
		name       string
		id         string
		upd        models.NoteUpdate
		setupMocks func(r *NoteRepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name: "successful update trims text",
			id:   noteID,
			upd:  models.NoteUpdate{Text: &text, Done: &done},
			setupMocks: func(r *NoteRepoMock, c *CacheMock) {
				r.On("UpdateNote", mock.Anything, noteID, "user-1",
					mock.MatchedBy(func(u models.NoteUpdate) bool {
						return u.Text != nil && *u.Text == "updated text" && u.Done != nil && *u.Done
					})).Return(&models.Note{ID: noteID, Text: "updated text", Done: true}, nil).Once()
				c.On("Invalidate", "notes:user-1").Return(nil).Once()
			},
		},
		{
			name: "empty text rejected",
			id:   noteID,
			upd: models.NoteUpdate{Text: func() *string {
				s := "   "
				return &s
			}()},
			setupMocks: func(_ *NoteRepoMock, _ *CacheMock) {},
			wantErr:    services.ErrEmptyText,
		},
		{
			name: "missing or foreign note",
			id:   noteID,
			upd:  models.NoteUpdate{Done: &done},
			setupMocks: func(r *NoteRepoMock, _ *CacheMock) {
				r.On("UpdateNote", mock.Anything, noteID, "user-1", mock.Anything).
					Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: services.ErrNoteNotFound,
		},
		{
			// id вида "not-a-uuid" не должен доходить до хранилища
			name:       "malformed id treated as not found",
			id:         "not-a-uuid",
			upd:        models.NoteUpdate{Done: &done},
			setupMocks: func(_ *NoteRepoMock, _ *CacheMock) {},
			wantErr:    services.ErrNoteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(NoteRepoMock)
			cache := new(CacheMock)
			svc := services.NewNoteService(repo, cache, discardLogger())

			tt.setupMocks(repo, cache)

			note, err := svc.Update(context.Background(), "user-1", tt.id, tt.upd)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, note)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "updated text", note.Text)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestNoteService_Remove(t *testing.T) {
	noteID := "8d7f54cc-0f65-4a8e-9b9d-2f3c4a5b6c7d"

	tests := []struct {
		name       string
		id         string
		setupMocks func(r *NoteRepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name: "successful removal",
			id:   noteID,
			setupMocks: func(r *NoteRepoMock, c *CacheMock) {
				r.On("RemoveNote", mock.Anything, noteID, "user-1").Return(1, nil).Once()
				c.On("Invalidate", "notes:user-1").Return(nil).Once()
			},
		},
		{
			name: "missing or foreign note",
			id:   noteID,
			setupMocks: func(r *NoteRepoMock, _ *CacheMock) {
				r.On("RemoveNote", mock.Anything, noteID, "user-1").Return(0, nil).Once()
			},
			wantErr: services.ErrNoteNotFound,
		},
		{
			name:       "malformed id treated as not found",
			id:         "not-a-uuid",
			setupMocks: func(_ *NoteRepoMock, _ *CacheMock) {},
			wantErr:    services.ErrNoteNotFound,
		},
		{
			name: "repository error",
			id:   noteID,
			setupMocks: func(r *NoteRepoMock, _ *CacheMock) {
				r.On("RemoveNote", mock.Anything, noteID, "user-1").
					Return(0, errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(NoteRepoMock)
			cache := new(CacheMock)
			svc := services.NewNoteService(repo, cache, discardLogger())

			tt.setupMocks(repo, cache)

			err := svc.Remove(context.Background(), "user-1", tt.id)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
