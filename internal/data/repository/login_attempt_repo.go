package repository

import (
	"context"
	"fmt"

	"food-marketplace/internal/data/entity"
	"food-marketplace/pkg/database"

	"go.uber.org/zap"
)

type LoginAttemptRepository interface {
	Create(ctx context.Context, attempt *entity.LoginAttempt) error
}

type loginAttemptRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLoginAttemptRepository(db database.PgxIface, log *zap.Logger) LoginAttemptRepository {
	return &loginAttemptRepository{
		db:  db,
		log: log.With(zap.String("repository", "login_attempt")),
	}
}

func (r *loginAttemptRepository) Create(ctx context.Context, attempt *entity.LoginAttempt) error {
	query := `
		INSERT INTO login_attempts (user_id, email, ip, success)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.Exec(ctx, query, attempt.UserID, attempt.Email, attempt.IP, attempt.Success); err != nil {
		return fmt.Errorf("record login attempt for %s: %w", attempt.Email, err)
	}

	return nil
}
