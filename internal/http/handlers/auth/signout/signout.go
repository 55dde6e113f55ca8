// Package signout реализует HTTP-обработчик выхода из системы.
//
// Сессия не хранится на сервере, поэтому выход сводится к очистке cookie.
// Выданный JWT остаётся валидным до естественного истечения срока действия.
package signout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-tracker/internal/http/response"
)

// Handler обрабатывает запросы выхода из системы.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Сбрасывает cookie сессии текущего пользователя.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Сессия завершена"
// @Router /auth/signout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "signed out successfully",
	}))
}
