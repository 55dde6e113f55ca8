package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/todo-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-tracker/internal/models"
)

// Мок сервиса с методом List
type NoteServiceMock struct {
	mock.Mock
}

func (m *NoteServiceMock) List(ctx context.Context, userUID string) ([]*models.Note, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Note), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	notes := []*models.Note{
		{ID: "note-2", Text: "newest", UserUID: "user-uid-1"},
		{ID: "note-1", Text: "oldest", UserUID: "user-uid-1", Done: true},
	}

	tests := []struct {
		name           string
		withUser       bool
		setupMocks     func(m *NoteServiceMock)
		wantStatusCode int
		wantLen        int
		wantError      string
	}{
		{
			name:     "returns user notes",
			withUser: true,
			setupMocks: func(m *NoteServiceMock) {
				m.On("List", mock.Anything, "user-uid-1").Return(notes, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantLen:        2,
		},
		{
			name:     "empty list is an array, not null",
			withUser: true,
			setupMocks: func(m *NoteServiceMock) {
				m.On("List", mock.Anything, "user-uid-1").Return([]*models.Note{}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantLen:        0,
		},
		{
			name:           "no user in context",
			withUser:       false,
			setupMocks:     func(_ *NoteServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:     "service error",
			withUser: true,
			setupMocks: func(m *NoteServiceMock) {
				m.On("List", mock.Anything, "user-uid-1").
					Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not list notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noteMock := new(NoteServiceMock)
			handler := New(newNoopLogger(), noteMock)

			tt.setupMocks(noteMock)

			req := httptest.NewRequest(http.MethodGet, "/todo", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, "user-uid-1")
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
				return
			}

			assert.Equal(t, "OK", got["status"])
			data, ok := got["data"].([]any)
			assert.True(t, ok)
			assert.Len(t, data, tt.wantLen)

			noteMock.AssertExpectations(t)
		})
	}
}
