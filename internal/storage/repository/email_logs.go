package repository

import (
	"context"
	"fmt"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

// CreateEmailLog добавляет запись аудита о попытке отправки письма.
// Журнал только пополняется, записи никогда не изменяются.
func (s *Storage) CreateEmailLog(ctx context.Context, entry models.EmailLog) error {
	const op = "storage.CreateEmailLog"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO email_logs (user_uid, subscription_id, email_type,
			      recipient, subject, status, sent_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		entry.UserUID, entry.SubscriptionID, entry.EmailType,
		entry.Recipient, entry.Subject, entry.Status, entry.SentAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
