package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"swasthya-admin/internal/domain"
)

// SubscriberRepository reads the subscriber directory. Subscribers are
// owned by the registration system; this subsystem never writes them.
type SubscriberRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscriber, error)
	FindMatching(ctx context.Context, filter domain.SubscriberFilter) ([]uuid.UUID, error)
}

type subscriberRepository struct {
	db *sqlx.DB
}

func NewSubscriberRepository(db *sqlx.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscriber, error) {
	var sub domain.Subscriber
	query := `SELECT id, name, state_id, cadre_id FROM subscribers WHERE id = $1`

	err := r.db.GetContext(ctx, &sub, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriberRepository) FindMatching(ctx context.Context, filter domain.SubscriberFilter) ([]uuid.UUID, error) {
	query := `SELECT id FROM subscribers`
	args := []interface{}{}
	where := ""

	if len(filter.CadreIDs) > 0 {
		args = append(args, pq.GenericArray{A: filter.CadreIDs})
		where = ` WHERE cadre_id = ANY($1)`
	}
	if len(filter.StateIDs) > 0 {
		args = append(args, pq.GenericArray{A: filter.StateIDs})
		if where == "" {
			where = ` WHERE state_id = ANY($1)`
		} else {
			where += ` AND state_id = ANY($2)`
		}
	}

	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, query+where, args...)
	return ids, err
}
