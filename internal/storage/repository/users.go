package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/todo-tracker/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (username, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash,
			      reset_password_token, reset_password_expires, created_at, updated_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash,
			      reset_password_token, reset_password_expires, created_at, updated_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

// SetResetToken сохраняет токен восстановления пароля и срок его действия.
func (s *Storage) SetResetToken(ctx context.Context, userUID, token string, expires time.Time) error {
	const op = "storage.SetResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET reset_password_token = $1,
			      reset_password_expires = $2,
			      updated_at = now()
			  WHERE uid = $3`
	if _, err := s.DB.ExecContext(ctx, query, token, expires, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByValidResetToken возвращает пользователя, у которого сохранён
// данный токен восстановления и срок его действия ещё не истёк.
// Возвращает sql.ErrNoRows, если токен не совпал или просрочен.
func (s *Storage) GetUserByValidResetToken(ctx context.Context, token string) (*models.User, error) {
	const op = "storage.GetUserByValidResetToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash,
			      reset_password_token, reset_password_expires, created_at, updated_at
			  FROM users
			  WHERE reset_password_token = $1
			    AND reset_password_expires > now()`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, token), op)
}

// UpdatePasswordAndClearResetToken заменяет хэш пароля и очищает оба
// поля токена восстановления одним атомарным обновлением.
func (s *Storage) UpdatePasswordAndClearResetToken(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePasswordAndClearResetToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1,
			      reset_password_token = NULL,
			      reset_password_expires = NULL,
			      updated_at = now()
			  WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, passwordHash, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var resetToken sql.NullString
	var resetExpires sql.NullTime

	if err := row.Scan(&u.UUID, &u.Username, &u.Email, &u.PasswordHash,
		&resetToken, &resetExpires, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resetToken.Valid {
		u.ResetPasswordToken = &resetToken.String
	}
	if resetExpires.Valid {
		u.ResetPasswordExpires = &resetExpires.Time
	}
	return u, nil
}
