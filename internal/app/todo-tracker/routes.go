// Package todotracker предоставляет маршруты основного приложения.
package todotracker

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/auth/forgot"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/auth/reset"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/auth/signout"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/note/create"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/note/health"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/note/list"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/note/remove"
	"github.com/magabrotheeeer/todo-tracker/internal/http/handlers/note/update"
	"github.com/magabrotheeeer/todo-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/todo-tracker/internal/services/auth"
	noteservice "github.com/magabrotheeeer/todo-tracker/internal/services/note"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService,
	noteService *noteservice.NoteService, allowedOrigins []string, tokenTTL time.Duration) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Открытые конечные точки аутентификации
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService, tokenTTL).ServeHTTP)
		r.Get("/me", me.New(logger, authService).ServeHTTP)
		r.Post("/signout", signout.New(logger).ServeHTTP)
		r.Post("/forgot", forgot.New(logger, authService).ServeHTTP)
		r.Post("/reset/{token}", reset.New(logger, authService).ServeHTTP)
	})

	// Группа заметок с JWT аутентификацией
	r.Route("/todo", func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Get("/", list.New(logger, noteService).ServeHTTP)
		r.Post("/", create.New(logger, noteService).ServeHTTP)
		r.Put("/{id}", update.New(logger, noteService).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, noteService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
