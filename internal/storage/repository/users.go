package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iulcalcpro/subscription-service/internal/models"
)

// GetUser возвращает пользователя по его UID либо (nil, nil), если
// такого пользователя нет.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, first_name, last_name, role, forever_free, status
			  FROM users
			  WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	u := &models.User{}
	var firstName, lastName sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &firstName, &lastName,
		&u.Role, &u.ForeverFree, &u.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.FirstName = firstName.String
	u.LastName = lastName.String
	return u, nil
}
