// Package models содержит доменную модель заметки пользователя.
// Заметка всегда принадлежит ровно одному пользователю и видна только ему.
package models

import "time"

// Note представляет собой одну заметку в списке дел пользователя.
// Временные метки поддерживаются системой: CreatedAt выставляется при создании,
// UpdatedAt обновляется при каждом изменении.
type Note struct {
	ID        string    `json:"id"`      // Уникальный идентификатор заметки
	Text      string    `json:"text"`    // Текст заметки, непустой
	Done      bool      `json:"done"`    // Признак выполнения
	UserUID   string    `json:"user_id"` // Идентификатор пользователя-владельца
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteUpdate описывает частичное обновление заметки из JSON-запроса.
// Каждое из полей может отсутствовать, тогда соответствующий атрибут не меняется.
type NoteUpdate struct {
	Text *string `json:"text,omitempty"`
	Done *bool   `json:"done,omitempty"`
}
