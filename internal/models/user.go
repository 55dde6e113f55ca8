// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и поля для восстановления пароля.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID                 string     `json:"userId"`   // Уникальный идентификатор пользователя
	Username             string     `json:"username"` // Имя пользователя (уникальное)
	Email                string     `json:"email"`    // Электронная почта (уникальная, в нижнем регистре)
	PasswordHash         string     `json:"-"`        // Хэш пароля, никогда не отдается клиенту
	ResetPasswordToken   *string    `json:"-"`        // Одноразовый токен восстановления пароля
	ResetPasswordExpires *time.Time `json:"-"`        // Срок действия токена восстановления
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
