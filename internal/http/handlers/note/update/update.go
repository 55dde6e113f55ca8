// Package update реализует HTTP-обработчик частичного обновления заметки.
// Обновляются только переданные поля {text, done}; заметка другого
// пользователя или несуществующий id дают ошибку 404.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-tracker/internal/http/response"
	"github.com/magabrotheeeer/todo-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/todo-tracker/internal/models"
	noteservice "github.com/magabrotheeeer/todo-tracker/internal/services/note"
)

// Service описывает интерфейс бизнес-логики обновления заметки.
type Service interface {
	Update(ctx context.Context, userUID, id string, upd models.NoteUpdate) (*models.Note, error)
}

// Handler обрабатывает запросы обновления заметок.
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
// @Summary Обновить заметку
// @Description Частично обновляет заметку текущего пользователя: только переданные поля {text, done}.
// @Tags Notes
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор заметки"
// @Param request body models.NoteUpdate true "Обновляемые поля"
// @Success 200 {object} models.Note "Обновленная заметка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Заметка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при обновлении заметки"
// @Security BearerAuth
// @Router /todo/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.NoteUpdate
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id := chi.URLParam(r, "id")

	note, err := h.service.Update(r.Context(), userUID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, noteservice.ErrNoteNotFound):
			log.Error("note not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("note not found"))
		case errors.Is(err, noteservice.ErrEmptyText):
			log.Error("empty note text")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("note text must not be empty"))
		default:
			log.Error("failed to update note", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update note"))
		}
		return
	}

	log.Info("success to update note", slog.String("id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(note))
}
