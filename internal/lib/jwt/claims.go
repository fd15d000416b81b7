// Package jwt реализует генерацию и парсинг сессионных JWT токенов
// с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов, несущих
// профиль пользователя: идентификатор, почту, роль и имя.
// MakerImpl — конкретная реализация с секретным ключом и сроком жизни.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга сессионных JWT токенов.
type Maker interface {
	// GenerateToken создает токен с данными профиля пользователя
	GenerateToken(uid, email, role, firstName, lastName string) (string, error)
	// ParseToken возвращает *SessionClaims с данными профиля
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
