package models

import "time"

// TrialToken отмечает факт выдачи пробного периода пользователю.
// Создаётся ровно один раз при первой активации и никогда не
// обновляется: само наличие записи означает, что пробный период
// уже выдавался, независимо от текущего статуса подписки.
type TrialToken struct {
	ID        string    // Уникальный идентификатор записи
	UserUID   string    // Идентификатор владельца (уникален)
	Token     string    // Непрозрачный уникальный токен
	ExpiresAt time.Time // Момент окончания пробного периода
}

// Expired сообщает, истёк ли пробный период к моменту now.
func (t *TrialToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
