package models

// IulSale — запись о продаже, привязанная к подписке. Создаётся внешним
// процессом и здесь только читается: количество подтверждённых продаж
// определяет правила истечения пробного периода и бесплатного доступа.
type IulSale struct {
	ID             string // Уникальный идентификатор записи
	SubscriptionID string // Связанная подписка
	Verified       bool   // Подтверждена ли продажа
}
