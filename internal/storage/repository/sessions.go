package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

// GetSessionWithUser возвращает неистёкшую сессию по её токену вместе
// со связанным пользователем либо (nil, nil, nil), если сессия не
// найдена или уже истекла.
func (s *Storage) GetSessionWithUser(ctx context.Context, sessionToken string, now time.Time) (*models.Session, *models.User, error) {
	const op = "storage.GetSessionWithUser"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.session_token, s.user_uid, s.expires,
			      u.uid, u.email, u.first_name, u.last_name, u.role, u.forever_free, u.status
			  FROM sessions s
			  JOIN users u ON u.uid = s.user_uid
			  WHERE s.session_token = $1 AND s.expires > $2`
	row := s.DB.QueryRowContext(ctx, query, sessionToken, now)

	sess := &models.Session{}
	u := &models.User{}
	var firstName, lastName sql.NullString
	if err := row.Scan(&sess.ID, &sess.SessionToken, &sess.UserUID, &sess.Expires,
		&u.UID, &u.Email, &firstName, &lastName, &u.Role, &u.ForeverFree, &u.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	u.FirstName = firstName.String
	u.LastName = lastName.String
	return sess, u, nil
}
