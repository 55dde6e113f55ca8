// Package resettoken генерирует одноразовые токены восстановления пароля.
//
// Токен — это 32 случайных байта в hex-кодировке (256 бит энтропии).
// Срок действия токена контролируется на уровне хранилища, сам токен не подписан.
package resettoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Size — количество случайных байт в токене до кодирования.
const Size = 32

// New возвращает новый случайный токен восстановления пароля.
func New() (string, error) {
	const op = "resettoken.New"
	buf := make([]byte, Size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}
