package me

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/todo-tracker/internal/models"
	authservice "github.com/magabrotheeeer/todo-tracker/internal/services/auth"
)

// Мок сервиса с методом ValidateToken
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMeHandler_ServeHTTP(t *testing.T) {
	testUser := &models.User{
		UUID:     "user-uid-1",
		Username: "user1",
		Email:    "user1@example.com",
	}

	tests := []struct {
		name           string
		prepareRequest func(r *http.Request)
		setupMocks     func(m *AuthServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "token from cookie",
			prepareRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
			},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "cookie-token").Return(testUser, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "token from Authorization header",
			prepareRequest: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer header-token")
			},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "header-token").Return(testUser, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "cookie takes priority over header",
			prepareRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
				r.Header.Set("Authorization", "Bearer header-token")
			},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "cookie-token").Return(testUser, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no token",
			prepareRequest: func(_ *http.Request) {},
			setupMocks:     func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "not authenticated",
		},
		{
			name: "invalid token",
			prepareRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "token", Value: "bad-token"})
			},
			setupMocks: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, authservice.ErrUnauthenticated).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handler := New(newNoopLogger(), authMock)

			tt.setupMocks(authMock)

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			tt.prepareRequest(req)

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
				assert.Equal(t, "user-uid-1", data["userId"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
