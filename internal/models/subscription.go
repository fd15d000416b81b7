package models

import "time"

// Типы планов подписки.
const (
	PlanTrial   = "trial"
	PlanMonthly = "monthly"
	PlanAnnual  = "annual"
)

// Статусы подписки. StatusNone не хранится в базе и используется
// только в ответах, когда подписка у пользователя отсутствует.
const (
	StatusTrialing = "trialing"
	StatusActive   = "active"
	StatusExpired  = "expired"
	StatusNone     = "none"
)

// ValidPlan сообщает, входит ли план в множество допустимых значений.
func ValidPlan(plan string) bool {
	return plan == PlanTrial || plan == PlanMonthly || plan == PlanAnnual
}

// Subscription представляет запись подписки пользователя.
// На одного пользователя приходится не более одной подписки,
// уникальность обеспечивается ограничением в базе данных.
// RenewalDate равен nil для бессрочных (оплаченных) подписок.
type Subscription struct {
	ID                   string     // Уникальный идентификатор записи
	UserUID              string     // Идентификатор владельца (уникален)
	PlanType             string     // trial, monthly или annual
	Status               string     // trialing, active или expired
	StartDate            time.Time  // Дата начала подписки
	RenewalDate          *time.Time // Дата окончания, nil — бессрочно
	StripeCustomerID     *string    // Зарезервировано, не используется
	StripeSubscriptionID *string    // Зарезервировано, не используется
}

// SubscriptionWithSales объединяет подписку с количеством
// подтверждённых продаж IUL, привязанных к ней.
type SubscriptionWithSales struct {
	Subscription
	VerifiedSalesCount int // Количество подтверждённых продаж
}

// SubscriptionWithUser — строка выборки для админского отчёта:
// подписка с количеством продаж и владельцем. User равен nil,
// если учётная запись владельца была удалена.
type SubscriptionWithUser struct {
	SubscriptionWithSales
	User *User
}

// SubscribeRequest используется для приёма данных из JSON-запроса
// на оформление подписки.
type SubscribeRequest struct {
	Plan string `json:"plan" validate:"required,oneof=trial monthly annual"` // Запрашиваемый план
}

// SubscriptionSummary — строка админского отчёта по всем подпискам.
// Поля пользователя заполняются заглушками, если связанная учётная
// запись была удалена.
type SubscriptionSummary struct {
	UserUID       string  `json:"userId"`        // Идентификатор владельца
	Status        string  `json:"status"`        // Текущий статус подписки
	PlanType      string  `json:"planType"`      // Тип плана
	StartDate     string  `json:"startDate"`     // Дата начала, RFC 3339
	EndDate       *string `json:"endDate"`       // Дата окончания или null
	RemainingDays *int    `json:"remainingDays"` // Дней до окончания или null
	UserEmail     string  `json:"userEmail"`     // Почта владельца
	UserName      string  `json:"userName"`      // Отображаемое имя владельца
	ForeverFree   bool    `json:"foreverFree"`   // Признак бесплатного доступа
	IulSalesCount int     `json:"iulSalesCount"` // Подтверждённые продажи
}
