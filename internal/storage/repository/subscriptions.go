package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

// ActivateTrial атомарно создаёт или обновляет подписку в статусе
// trialing и выдаёт пробный токен. Обе записи пишутся в одной
// транзакции, чтобы подписка не могла остаться без токена.
// Возвращает ID подписки.
func (s *Storage) ActivateTrial(ctx context.Context, userUID, plan string,
	start, renewal time.Time, token string) (string, error) {
	const op = "storage.ActivateTrial"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO subscriptions (user_uid, plan_type, status, start_date, renewal_date)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET plan_type = EXCLUDED.plan_type,
			      status = EXCLUDED.status,
			      start_date = EXCLUDED.start_date,
			      renewal_date = EXCLUDED.renewal_date
			  RETURNING id`
	var subscriptionID string
	if err = tx.QueryRowContext(ctx, query,
		userUID, plan, models.StatusTrialing, start, renewal).Scan(&subscriptionID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO trial_tokens (user_uid, token, expires_at)
			 VALUES ($1, $2, $3)`
	if _, err = tx.ExecContext(ctx, query, userUID, token, renewal); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return subscriptionID, nil
}

// UpdatePlan меняет только тип плана подписки пользователя, не трогая
// статус и дату окончания. Возвращает количество изменённых строк.
func (s *Storage) UpdatePlan(ctx context.Context, userUID, plan string) (int, error) {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET plan_type = $1 WHERE user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, plan, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ActivatePaid создаёт или обновляет подписку в статусе active без
// даты окончания. Дата начала выставляется только при создании записи.
// Возвращает ID подписки.
func (s *Storage) ActivatePaid(ctx context.Context, userUID, plan string, start time.Time) (string, error) {
	const op = "storage.ActivatePaid"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, plan_type, status, start_date, renewal_date)
			  VALUES ($1, $2, $3, $4, NULL)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET plan_type = EXCLUDED.plan_type,
			      status = EXCLUDED.status,
			      renewal_date = NULL
			  RETURNING id`
	var subscriptionID string
	if err := s.DB.QueryRowContext(ctx, query,
		userUID, plan, models.StatusActive, start).Scan(&subscriptionID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return subscriptionID, nil
}

// GetSubscriptionWithSales возвращает подписку пользователя вместе с
// количеством подтверждённых продаж либо (nil, nil), если подписки нет.
func (s *Storage) GetSubscriptionWithSales(ctx context.Context, userUID string) (*models.SubscriptionWithSales, error) {
	const op = "storage.GetSubscriptionWithSales"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sub.id, sub.user_uid, sub.plan_type, sub.status, sub.start_date,
			      sub.renewal_date, sub.stripe_customer_id, sub.stripe_subscription_id,
			      COUNT(sale.id) FILTER (WHERE sale.verified) AS verified_sales
			  FROM subscriptions sub
			  LEFT JOIN iul_sales sale ON sale.subscription_id = sub.id
			  WHERE sub.user_uid = $1
			  GROUP BY sub.id`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var result models.SubscriptionWithSales
	var renewal sql.NullTime
	var stripeCustomer, stripeSubscription sql.NullString
	if err := row.Scan(&result.ID, &result.UserUID, &result.PlanType, &result.Status,
		&result.StartDate, &renewal, &stripeCustomer, &stripeSubscription,
		&result.VerifiedSalesCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if renewal.Valid {
		result.RenewalDate = &renewal.Time
	}
	if stripeCustomer.Valid {
		result.StripeCustomerID = &stripeCustomer.String
	}
	if stripeSubscription.Valid {
		result.StripeSubscriptionID = &stripeSubscription.String
	}
	return &result, nil
}

// UpdateStatus выставляет подписке пользователя новый статус.
// Возвращает количество изменённых строк.
func (s *Storage) UpdateStatus(ctx context.Context, userUID, status string) (int, error) {
	const op = "storage.UpdateStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET status = $1 WHERE user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, status, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptionsWithUsers возвращает все подписки вместе с владельцами
// и количеством подтверждённых продаж, новые первыми. Пользователь
// присоединяется через LEFT JOIN: удаление учётной записи не выбрасывает
// подписку из отчёта.
func (s *Storage) ListSubscriptionsWithUsers(ctx context.Context) ([]*models.SubscriptionWithUser, error) {
	const op = "storage.ListSubscriptionsWithUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sub.id, sub.user_uid, sub.plan_type, sub.status, sub.start_date,
			      sub.renewal_date,
			      COUNT(sale.id) FILTER (WHERE sale.verified) AS verified_sales,
			      u.uid, u.email, u.first_name, u.last_name, u.forever_free
			  FROM subscriptions sub
			  LEFT JOIN iul_sales sale ON sale.subscription_id = sub.id
			  LEFT JOIN users u ON u.uid = sub.user_uid
			  GROUP BY sub.id, u.uid
			  ORDER BY sub.start_date DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionWithUser
	for rows.Next() {
		var item models.SubscriptionWithUser
		var renewal sql.NullTime
		var userUID, email, firstName, lastName sql.NullString
		var foreverFree sql.NullBool
		if err = rows.Scan(&item.ID, &item.UserUID, &item.PlanType, &item.Status,
			&item.StartDate, &renewal, &item.VerifiedSalesCount,
			&userUID, &email, &firstName, &lastName, &foreverFree); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if renewal.Valid {
			item.RenewalDate = &renewal.Time
		}
		if userUID.Valid {
			item.User = &models.User{
				UID:         userUID.String,
				Email:       email.String,
				FirstName:   firstName.String,
				LastName:    lastName.String,
				ForeverFree: foreverFree.Bool,
			}
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
