// Package me реализует HTTP-обработчик проверки текущей сессии.
//
// Токен берётся из cookie "token" или из заголовка Authorization,
// при успешной проверке возвращается идентификатор пользователя.
package me

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-tracker/internal/http/response"
	"github.com/magabrotheeeer/todo-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/todo-tracker/internal/models"
)

// Service описывает интерфейс валидации токена сессии.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

// Handler обрабатывает запросы проверки сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Проверяет токен из cookie или заголовка Authorization и возвращает идентификатор пользователя.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Идентификатор пользователя"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или невалиден"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := tokenFromRequest(r)
	if token == "" {
		log.Error("no session token in request")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	user, err := h.service.ValidateToken(r.Context(), token)
	if err != nil {
		log.Error("invalid token", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid token"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"userId": user.UUID,
	}))
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
