package models

import "time"

// Session — серверная сессия, по которой можно опознать пользователя
// через bearer-токен. Записи создаются внешним сервисом аутентификации,
// здесь используются только для чтения.
type Session struct {
	ID           string    // Уникальный идентификатор записи
	SessionToken string    // Непрозрачный токен сессии
	UserUID      string    // Идентификатор пользователя
	Expires      time.Time // Момент истечения сессии
}

// UserProfile — данные о пользователе, извлечённые при аутентификации
// запроса и помещаемые в контекст. SubscriptionStatus намеренно
// остаётся пустым при опознании по bearer-токену.
type UserProfile struct {
	UID                string `json:"id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Status             string `json:"status,omitempty"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	SubscriptionStatus string `json:"subscriptionStatus,omitempty"`
}
