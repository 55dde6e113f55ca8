// Package create реализует HTTP-обработчик для создания новых заметок пользователя.
//
// Handler принимает JSON-запрос с текстом заметки, валидирует его, извлекает UID
// пользователя из контекста, вызывает бизнес-логику создания заметки
// и возвращает созданную запись в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/todo-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-tracker/internal/http/response"
	"github.com/magabrotheeeer/todo-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/todo-tracker/internal/models"
	noteservice "github.com/magabrotheeeer/todo-tracker/internal/services/note"
)

// Request — входные данные для создания заметки.
type Request struct {
	Text string `json:"text" validate:"required"`
}

// Service описывает интерфейс бизнес-логики создания заметки.
type Service interface {
	Create(ctx context.Context, userUID, text string) (*models.Note, error)
}

// Handler управляет HTTP-запросами на создание новых заметок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать новую заметку
// @Description Создает новую заметку для текущего пользователя.
// @Tags Notes
// @Accept  json
// @Produce  json
// @Param request body Request true "Текст новой заметки"
// @Success 200 {object} models.Note "Созданная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании заметки"
// @Security BearerAuth
// @Router /todo [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	note, err := h.service.Create(r.Context(), userUID, req.Text)
	if err != nil {
		if errors.Is(err, noteservice.ErrEmptyText) {
			log.Error("empty note text")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("note text must not be empty"))
			return
		}
		log.Error("failed to create note", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create note"))
		return
	}

	log.Info("success to create note", slog.String("id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(note))
}
