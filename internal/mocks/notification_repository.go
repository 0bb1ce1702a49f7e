package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"swasthya-admin/internal/domain"
)

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, record *domain.NotificationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.NotificationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationRecord), args.Error(1)
}

func (m *NotificationRepository) GetByNode(ctx context.Context, vertical domain.Vertical, nodeID uuid.UUID) (*domain.NotificationRecord, error) {
	args := m.Called(ctx, vertical, nodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationRecord), args.Error(1)
}

func (m *NotificationRepository) List(ctx context.Context, vertical *domain.Vertical, params domain.PaginationParams) ([]domain.NotificationRecord, int64, error) {
	args := m.Called(ctx, vertical, params)
	return args.Get(0).([]domain.NotificationRecord), args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.NotificationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PushQueue struct {
	mock.Mock
}

func (m *PushQueue) Enqueue(ctx context.Context, job *domain.PushJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type AudienceService struct {
	mock.Mock
}

func (m *AudienceService) VisibleRoots(ctx context.Context, vertical domain.Vertical, subscriberID uuid.UUID) ([]domain.AlgorithmNode, error) {
	args := m.Called(ctx, vertical, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AlgorithmNode), args.Error(1)
}

func (m *AudienceService) ComputeAudience(ctx context.Context, node *domain.AlgorithmNode) ([]uuid.UUID, error) {
	args := m.Called(ctx, node)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type TreeService struct {
	mock.Mock
}

func (m *TreeService) ResolveTree(ctx context.Context, vertical domain.Vertical, rootID uuid.UUID, lang string) (*domain.TreeNode, error) {
	args := m.Called(ctx, vertical, rootID, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreeNode), args.Error(1)
}

func (m *TreeService) ResolveAllRootTrees(ctx context.Context, vertical domain.Vertical, lang string) ([]domain.TreeNode, error) {
	args := m.Called(ctx, vertical, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TreeNode), args.Error(1)
}

func (m *TreeService) ListRoots(ctx context.Context, vertical domain.Vertical) ([]domain.AlgorithmNode, error) {
	args := m.Called(ctx, vertical)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AlgorithmNode), args.Error(1)
}

func (m *TreeService) InvalidateCache(ctx context.Context, vertical domain.Vertical) error {
	args := m.Called(ctx, vertical)
	return args.Error(0)
}
