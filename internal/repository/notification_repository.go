package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"swasthya-admin/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, record *domain.NotificationRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationRecord, error)
	GetByNode(ctx context.Context, vertical domain.Vertical, nodeID uuid.UUID) (*domain.NotificationRecord, error)
	List(ctx context.Context, vertical *domain.Vertical, params domain.PaginationParams) ([]domain.NotificationRecord, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, record *domain.NotificationRecord) error {
	query := `
		INSERT INTO notifications (id, title, description, link, user_ids, status, type, vertical, node_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		record.ID, record.Title, record.Description, record.Link, record.UserIDs,
		record.Status, record.Type, record.Vertical, record.NodeID, record.CreatedBy,
	).Scan(&record.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationRecord, error) {
	var record domain.NotificationRecord
	query := `SELECT * FROM notifications WHERE id = $1`

	err := r.db.GetContext(ctx, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *notificationRepository) GetByNode(ctx context.Context, vertical domain.Vertical, nodeID uuid.UUID) (*domain.NotificationRecord, error) {
	var record domain.NotificationRecord
	query := `SELECT * FROM notifications WHERE vertical = $1 AND node_id = $2
		ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, &record, query, vertical, nodeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *notificationRepository) List(ctx context.Context, vertical *domain.Vertical, params domain.PaginationParams) ([]domain.NotificationRecord, int64, error) {
	params.Validate()

	var total int64
	var records []domain.NotificationRecord

	if vertical != nil {
		countQuery := `SELECT COUNT(*) FROM notifications WHERE vertical = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, *vertical); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM notifications
			WHERE vertical = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &records, query, *vertical, params.PageSize, params.Offset())
		return records, total, err
	}

	countQuery := `SELECT COUNT(*) FROM notifications`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &records, query, params.PageSize, params.Offset())
	return records, total, err
}

func (r *notificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus) error {
	query := `UPDATE notifications SET status = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notifications WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
