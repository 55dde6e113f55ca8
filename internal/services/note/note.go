// Package services содержит бизнес-логику для управления заметками пользователя,
// включая кеширование списков. Все операции выполняются от имени владельца:
// хранилище фильтрует записи по UID пользователя.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/todo-tracker/internal/models"
)

// Ошибки бизнес-уровня, по которым обработчики выбирают HTTP-статус.
var (
	// ErrEmptyText — текст заметки пуст после удаления пробелов.
	ErrEmptyText = errors.New("note text must not be empty")
	// ErrNoteNotFound — заметка не существует или принадлежит другому пользователю.
	// Оба случая неразличимы для вызывающего.
	ErrNoteNotFound = errors.New("note not found")
)

// NoteRepository определяет методы для работы с заметками в хранилище.
type NoteRepository interface {
	// CreateNote добавляет новую заметку и возвращает её с временными метками.
	CreateNote(ctx context.Context, note models.Note) (*models.Note, error)
	// ListNotes возвращает заметки пользователя, новые — первыми.
	ListNotes(ctx context.Context, userUID string) ([]*models.Note, error)
	// UpdateNote применяет частичное обновление заметки пользователя.
	UpdateNote(ctx context.Context, id, userUID string, upd models.NoteUpdate) (*models.Note, error)
	// RemoveNote удаляет заметку пользователя и возвращает количество удалённых записей.
	RemoveNote(ctx context.Context, id, userUID string) (int, error)
}

// Cache описывает методы для кэширования списков заметок.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// NoteService реализует бизнес-логику работы с заметками, включая кеширование.
type NoteService struct {
	repo  NoteRepository
	cache Cache
	log   *slog.Logger
}

// NewNoteService создает новый экземпляр NoteService.
func NewNoteService(repo NoteRepository, cache Cache, log *slog.Logger) *NoteService {
	return &NoteService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(userUID string) string {
	return "notes:" + userUID
}

// List возвращает все заметки пользователя, используя кеш или репозиторий.
func (s *NoteService) List(ctx context.Context, userUID string) ([]*models.Note, error) {
	var result []*models.Note
	key := cacheKey(userUID)
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("failed to read notes from cache", slog.String("key", key), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListNotes(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to cache notes", slog.String("key", key), slog.Any("err", err))
	}
	return result, nil
}

// Create создает новую заметку для пользователя и инвалидирует кеш его списка.
func (s *NoteService) Create(ctx context.Context, userUID, text string) (*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	note := models.Note{
		ID:      uuid.New().String(),
		Text:    text,
		Done:    false,
		UserUID: userUID,
	}
	created, err := s.repo.CreateNote(ctx, note)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new note", slog.String("id", created.ID))
	s.invalidate(userUID)
	return created, nil
}

// Update применяет частичное обновление {text, done} к заметке пользователя.
// Возвращает ErrNoteNotFound, если заметки нет или она принадлежит другому.
func (s *NoteService) Update(ctx context.Context, userUID, id string, upd models.NoteUpdate) (*models.Note, error) {
	if upd.Text != nil {
		trimmed := strings.TrimSpace(*upd.Text)
		if trimmed == "" {
			return nil, ErrEmptyText
		}
		upd.Text = &trimmed
	}

	// Синтаксически невалидный id неотличим от несуществующей заметки
	// и не должен доходить до Postgres как ошибка типа uuid.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNoteNotFound
	}

	updated, err := s.repo.UpdateNote(ctx, id, userUID, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	s.invalidate(userUID)
	return updated, nil
}

// Remove удаляет заметку пользователя.
// Возвращает ErrNoteNotFound, если заметки нет или она принадлежит другому.
func (s *NoteService) Remove(ctx context.Context, userUID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNoteNotFound
	}

	count, err := s.repo.RemoveNote(ctx, id, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoteNotFound
	}

	s.invalidate(userUID)
	return nil
}

func (s *NoteService) invalidate(userUID string) {
	key := cacheKey(userUID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate notes cache", slog.String("key", key), slog.Any("err", err))
	}
}
