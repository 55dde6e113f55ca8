package remove

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/todo-tracker/internal/http/middlewarectx"
	noteservice "github.com/magabrotheeeer/todo-tracker/internal/services/note"
)

// Мок сервиса с методом Remove
type NoteServiceMock struct {
	mock.Mock
}

func (m *NoteServiceMock) Remove(ctx context.Context, userUID, id string) error {
	args := m.Called(ctx, userUID, id)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		withUser       bool
		setupMocks     func(m *NoteServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name:     "successful removal",
			withUser: true,
			setupMocks: func(m *NoteServiceMock) {
				m.On("Remove", mock.Anything, "user-uid-1", "note-1").Return(nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no user in context",
			withUser:       false,
			setupMocks:     func(_ *NoteServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:     "missing or foreign note returns 404",
			withUser: true,
			setupMocks: func(m *NoteServiceMock) {
				m.On("Remove", mock.Anything, "user-uid-1", "note-1").
					Return(noteservice.ErrNoteNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      "note not found",
		},
		{
			name:     "service error",
			withUser: true,
			setupMocks: func(m *NoteServiceMock) {
				m.On("Remove", mock.Anything, "user-uid-1", "note-1").
					Return(errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to delete note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noteMock := new(NoteServiceMock)
			handler := New(newNoopLogger(), noteMock)

			tt.setupMocks(noteMock)

			req := httptest.NewRequest(http.MethodDelete, "/todo/note-1", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, "user-uid-1")
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "note-1")
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
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
			} else {
				assert.Equal(t, "OK", got["status"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "note deleted", data["message"])
			}

			noteMock.AssertExpectations(t)
		})
	}
}
