// Package services содержит логику бизнес-уровня для регистрации, аутентификации
// и восстановления пароля пользователей.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/todo-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-tracker/internal/lib/password"
	"github.com/magabrotheeeer/todo-tracker/internal/lib/resettoken"
	"github.com/magabrotheeeer/todo-tracker/internal/models"
)

// Ошибки бизнес-уровня, по которым обработчики выбирают HTTP-статус.
var (
	// ErrUserAlreadyExists — пользователь с таким email или username уже зарегистрирован.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials — неверный email или пароль. Одна и та же ошибка
	// для несуществующего email и неверного пароля, чтобы не раскрывать
	// существование учетной записи.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated — токен сессии отсутствует, просрочен или невалиден.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrEmailNotFound — email не найден при запросе восстановления пароля.
	ErrEmailNotFound = errors.New("email not found")
	// ErrInvalidResetToken — токен восстановления не совпал или просрочен.
	ErrInvalidResetToken = errors.New("invalid or expired token")
	// ErrEmailDelivery — почтовый провайдер не принял письмо.
	ErrEmailDelivery = errors.New("failed to send reset email")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// SetResetToken сохраняет токен восстановления и срок его действия.
	SetResetToken(ctx context.Context, userUID, token string, expires time.Time) error

	// GetUserByValidResetToken возвращает пользователя по непросроченному токену.
	GetUserByValidResetToken(ctx context.Context, token string) (*models.User, error)

	// UpdatePasswordAndClearResetToken заменяет хэш пароля и очищает токен.
	UpdatePasswordAndClearResetToken(ctx context.Context, userUID, passwordHash string) error
}

// ResetMailer отправляет пользователю письмо со ссылкой восстановления пароля.
type ResetMailer interface {
	SendPasswordResetLink(email, resetURL string) error
}

// AuthService отвечает за регистрацию, авторизацию, валидацию JWT
// и восстановление пароля через одноразовый токен.
type AuthService struct {
	users         UserRepository
	jwtMaker      jwt.Maker
	mailer        ResetMailer
	clientURL     string
	resetTokenTTL time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, mailer ResetMailer,
	clientURL string, resetTokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		jwtMaker:      jwtMaker,
		mailer:        mailer,
		clientURL:     clientURL,
		resetTokenTTL: resetTokenTTL,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Email приводится к нижнему регистру, username очищается от пробелов.
// Возвращает созданного пользователя без хэша пароля.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		// UNIQUE на email и username: занятый username и конкурентная
		// регистрация того же email приходят сюда нарушением ограничения.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.UUID = uid
	user.PasswordHash = ""
	return &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT сессии.
// Возвращает токен и UID пользователя.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, userUID string, err error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.UUID)
	if err != nil {
		return "", "", err
	}
	return token, user.UUID, nil
}

// ValidateToken проверяет JWT и убеждается, что пользователь всё ещё существует.
// Возвращает пользователя без хэша пароля.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.GetUser(ctx, claims.UserUID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user.PasswordHash = ""
	return user, nil
}

// RequestPasswordReset генерирует одноразовый токен восстановления, сохраняет его
// со сроком действия и отправляет пользователю письмо со ссылкой.
// Если письмо отправить не удалось, токен остаётся в базе — повторный запрос
// сгенерирует новый.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmailNotFound
		}
		return err
	}

	token, err := resettoken.New()
	if err != nil {
		return err
	}
	expires := time.Now().Add(s.resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.UUID, token, expires); err != nil {
		return err
	}

	resetURL := s.clientURL + "/reset-password/" + token
	if err := s.mailer.SendPasswordResetLink(user.Email, resetURL); err != nil {
		return ErrEmailDelivery
	}
	return nil
}

// ResetPassword устанавливает новый пароль по одноразовому токену восстановления.
// Токен одноразовый: при успехе оба поля очищаются, повторная попытка
// с тем же токеном вернет ErrInvalidResetToken.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.GetUserByValidResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return err
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordAndClearResetToken(ctx, user.UUID, hashed)
}
