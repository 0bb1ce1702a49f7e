package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"swasthya-admin/internal/domain"
)

type SubscriberRepository struct {
	mock.Mock
}

func (m *SubscriberRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}

func (m *SubscriberRepository) FindMatching(ctx context.Context, filter domain.SubscriberFilter) ([]uuid.UUID, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type DeviceTokenRepository struct {
	mock.Mock
}

func (m *DeviceTokenRepository) FindBySubscriberIDs(ctx context.Context, ids []uuid.UUID) ([]domain.DeviceToken, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeviceToken), args.Error(1)
}
