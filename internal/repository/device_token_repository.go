package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"swasthya-admin/internal/domain"
)

// DeviceTokenRepository reads the push-token directory. Tokens are written
// by the mobile client on login; this subsystem only looks them up.
type DeviceTokenRepository interface {
	FindBySubscriberIDs(ctx context.Context, ids []uuid.UUID) ([]domain.DeviceToken, error)
}

type deviceTokenRepository struct {
	db *sqlx.DB
}

func NewDeviceTokenRepository(db *sqlx.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

func (r *deviceTokenRepository) FindBySubscriberIDs(ctx context.Context, ids []uuid.UUID) ([]domain.DeviceToken, error) {
	if len(ids) == 0 {
		return []domain.DeviceToken{}, nil
	}

	var tokens []domain.DeviceToken
	query := `SELECT id, user_id, notification_token, created_at FROM device_tokens
		WHERE user_id = ANY($1) AND notification_token <> ''`

	err := r.db.SelectContext(ctx, &tokens, query, pq.GenericArray{A: ids})
	return tokens, err
}
