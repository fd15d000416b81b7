package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

// Transition — отложенное изменение хранимого статуса, вычисленное
// из текущего состояния подписки.
type Transition int

const (
	// TransitionNone — хранимый статус актуален.
	TransitionNone Transition = iota
	// TransitionMarkExpired — пробный период истёк без продаж, подписку
	// нужно перевести в expired.
	TransitionMarkExpired
	// TransitionGrantActive — есть подтверждённая продажа, подписке
	// положен бесплатный доступ в статусе active.
	TransitionGrantActive
)

// ResolveStatus — единственная точка вычисления статуса подписки.
// Возвращает статус, который нужно сообщить клиенту, и переход,
// который при желании можно зафиксировать в хранилище. Сама функция
// ничего не пишет.
//
// Подтверждённая продажа подавляет ветку истечения пробного периода:
// оба условия взаимоисключающие.
func ResolveStatus(sub *models.SubscriptionWithSales, now time.Time) (string, Transition) {
	if sub == nil {
		return models.StatusNone, TransitionNone
	}

	trialExpired := sub.Status == models.StatusTrialing &&
		sub.RenewalDate != nil &&
		sub.RenewalDate.Before(now) &&
		sub.VerifiedSalesCount == 0
	if trialExpired {
		return models.StatusExpired, TransitionMarkExpired
	}

	if sub.VerifiedSalesCount > 0 && sub.Status != models.StatusActive {
		return models.StatusActive, TransitionGrantActive
	}

	return sub.Status, TransitionNone
}

// StatusInfo — проекция текущего состояния подписки для ответа клиенту.
type StatusInfo struct {
	Status        string     // Вычисленный статус, none если подписки нет
	PlanType      string     // Тип плана
	EndDate       *time.Time // Дата окончания, nil — бессрочно
	IulSalesCount int        // Подтверждённые продажи
}

// Status возвращает чистую проекцию состояния подписки пользователя.
// Вычисленный статус не сохраняется: операция только читает.
func (s *SubscriptionService) Status(ctx context.Context, userUID string) (*StatusInfo, error) {
	sub, err := s.repo.GetSubscriptionWithSales(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &StatusInfo{Status: models.StatusNone}, nil
	}

	status, _ := ResolveStatus(sub, time.Now().UTC())
	return &StatusInfo{
		Status:        status,
		PlanType:      sub.PlanType,
		EndDate:       sub.RenewalDate,
		IulSalesCount: sub.VerifiedSalesCount,
	}, nil
}

// StatusWithSideEffects вычисляет статус тем же способом, что и Status,
// но дополнительно фиксирует вычисленный переход в хранилище. Операция
// идемпотентна: повторный вызов без изменения данных ничего не пишет.
func (s *SubscriptionService) StatusWithSideEffects(ctx context.Context, userUID string) (string, error) {
	sub, err := s.repo.GetSubscriptionWithSales(ctx, userUID)
	if err != nil {
		return "", err
	}

	status, transition := ResolveStatus(sub, time.Now().UTC())
	switch transition {
	case TransitionMarkExpired:
		if _, err := s.repo.UpdateStatus(ctx, userUID, models.StatusExpired); err != nil {
			return "", err
		}
		s.log.Info("trial marked expired", slog.String("user_uid", userUID))
	case TransitionGrantActive:
		if _, err := s.repo.UpdateStatus(ctx, userUID, models.StatusActive); err != nil {
			return "", err
		}
		s.log.Info("free access granted for verified sale", slog.String("user_uid", userUID))
	case TransitionNone:
	}

	return status, nil
}
