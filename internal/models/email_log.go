package models

import "time"

// Типы уведомлений, фиксируемые в журнале писем.
const (
	EmailTypeTrialAdmin = "trial_admin"
	EmailTypeTrialUser  = "trial_user"
	EmailTypePaidAdmin  = "paid_admin"
)

// Статусы попытки отправки письма.
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog — запись аудита попытки отправки уведомления.
// Записи только добавляются: фиксируется каждая попытка,
// как успешная, так и неуспешная. Никогда не изменяются и не удаляются.
type EmailLog struct {
	ID             string    // Уникальный идентификатор записи
	UserUID        string    // Пользователь, к которому относится письмо
	SubscriptionID *string   // Связанная подписка, если есть
	EmailType      string    // Тип уведомления
	Recipient      string    // Адрес получателя
	Subject        string    // Тема письма
	Status         string    // sent или failed
	SentAt         time.Time // Момент попытки отправки
}
