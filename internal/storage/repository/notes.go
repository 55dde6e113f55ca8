package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/todo-tracker/internal/models"
)

// CreateNote вставляет новую заметку и возвращает её с системными временными метками.
func (s *Storage) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	const op = "storage.CreateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notes (id, text, done, user_uid)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, text, done, user_uid, created_at, updated_at`
	var result models.Note
	if err := s.DB.QueryRowContext(ctx, query,
		note.ID, note.Text, note.Done, note.UserUID).Scan(
		&result.ID, &result.Text, &result.Done, &result.UserUID,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListNotes возвращает все заметки пользователя, новые — первыми.
func (s *Storage) ListNotes(ctx context.Context, userUID string) ([]*models.Note, error) {
	const op = "storage.ListNotes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, text, done, user_uid, created_at, updated_at
			  FROM notes
			  WHERE user_uid = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.Text, &item.Done, &item.UserUID,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateNote применяет частичное обновление заметки, принадлежащей пользователю.
// Неуказанные поля сохраняют прежние значения. Возвращает sql.ErrNoRows,
// если заметки с таким id у данного пользователя нет.
func (s *Storage) UpdateNote(ctx context.Context, id, userUID string, upd models.NoteUpdate) (*models.Note, error) {
	const op = "storage.UpdateNote"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE notes
			  SET text = COALESCE($1, text),
			      done = COALESCE($2, done),
			      updated_at = now()
			  WHERE id = $3 AND user_uid = $4
			  RETURNING id, text, done, user_uid, created_at, updated_at`
	var result models.Note
	if err := s.DB.QueryRowContext(ctx, query, upd.Text, upd.Done, id, userUID).Scan(
		&result.ID, &result.Text, &result.Done, &result.UserUID,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemoveNote удаляет заметку пользователя по id и возвращает количество удалённых строк.
func (s *Storage) RemoveNote(ctx context.Context, id, userUID string) (int, error) {
	const op = "storage.RemoveNote"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM notes WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
