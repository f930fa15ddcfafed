package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/pkg/database"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	start := time.Now()
	var u models.User
	err := r.db.QueryRowContext(ctx, `SELECT id, name, mobile, avatar_url, create_time FROM ih_user_profile WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Mobile, &u.AvatarURL, &u.CreateTime)
	if errors.Is(err, sql.ErrNoRows) {
		database.Observe("find_by_id", "ih_user_profile", start, nil)
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	database.Observe("find_by_id", "ih_user_profile", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %d: %w", id, err)
	}
	return &u, nil
}
