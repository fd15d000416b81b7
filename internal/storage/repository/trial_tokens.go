package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

// GetTrialToken возвращает пробный токен пользователя либо (nil, nil),
// если пробный период ему ещё не выдавался.
func (s *Storage) GetTrialToken(ctx context.Context, userUID string) (*models.TrialToken, error) {
	const op = "storage.GetTrialToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, token, expires_at
			  FROM trial_tokens
			  WHERE user_uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	t := &models.TrialToken{}
	if err := row.Scan(&t.ID, &t.UserUID, &t.Token, &t.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}
