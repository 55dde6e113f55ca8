// Package smtp содержит транспорт для отправки писем восстановления пароля.
// Интерфейсы отделяют сервис отправки от net/smtp, чтобы тесты могли
// подменять соединение моками.
package smtp

import "io"

// Client — установленная SMTP-сессия, через которую уходит письмо со ссылкой.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface открывает SMTP-соединение и сообщает адрес отправителя.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
