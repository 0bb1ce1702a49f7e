package notification

import (
	"context"

	"github.com/google/uuid"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/repository"
)

// Service exposes dispatch records to the admin console.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationRecord, error)
	List(ctx context.Context, vertical *domain.Vertical, params domain.PaginationParams) (domain.PaginatedResponse[domain.NotificationRecord], error)
}

type service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) Service {
	return &service{notifRepo: notifRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationRecord, error) {
	return s.notifRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, vertical *domain.Vertical, params domain.PaginationParams) (domain.PaginatedResponse[domain.NotificationRecord], error) {
	records, total, err := s.notifRepo.List(ctx, vertical, params)
	if err != nil {
		return domain.PaginatedResponse[domain.NotificationRecord]{}, err
	}
	return domain.NewPaginatedResponse(records, params.Page, params.PageSize, total), nil
}
