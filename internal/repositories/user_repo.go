package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"restopos-api/internal/models"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ Users = (*UserRepository)(nil)

func (r *UserRepository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	query := r.db.Rebind(`
SELECT name, full_name, enabled
FROM users
WHERE api_token = ? AND enabled = 1
LIMIT 1`)

	var u models.User
	err := r.db.QueryRowContext(ctx, query, token).Scan(&u.Name, &u.FullName, &u.Enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
