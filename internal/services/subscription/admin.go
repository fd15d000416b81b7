package services

import (
	"context"
	"time"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

// Заглушки для подписок, чей владелец был удалён.
const (
	deletedUserEmail = "unknown@deleted"
	deletedUserName  = "Unknown User"
)

// ListSubscriptions возвращает сводку по всем подпискам для админской
// панели, новые первыми. Подписки удалённых пользователей получают
// заглушки вместо данных владельца и никогда не роняют весь список.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context) ([]models.SubscriptionSummary, error) {
	rows, err := s.repo.ListSubscriptionsWithUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := make([]models.SubscriptionSummary, 0, len(rows))
	for _, row := range rows {
		summary := models.SubscriptionSummary{
			UserUID:       row.UserUID,
			Status:        row.Status,
			PlanType:      row.PlanType,
			StartDate:     row.StartDate.Format(time.RFC3339),
			UserEmail:     deletedUserEmail,
			UserName:      deletedUserName,
			IulSalesCount: row.VerifiedSalesCount,
		}

		if row.RenewalDate != nil {
			endDate := row.RenewalDate.Format(time.RFC3339)
			summary.EndDate = &endDate
			summary.RemainingDays = remainingDays(*row.RenewalDate, now)
		}

		if row.User != nil {
			summary.UserEmail = row.User.Email
			summary.ForeverFree = row.User.ForeverFree
			if name := row.User.FullName(); name != "" {
				summary.UserName = name
			}
		}

		result = append(result, summary)
	}
	return result, nil
}

// remainingDays возвращает количество полных и неполных дней до даты
// окончания, не меньше нуля.
func remainingDays(renewal, now time.Time) *int {
	days := int((renewal.Sub(now) + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return &days
}
