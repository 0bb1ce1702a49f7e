package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"swasthya-admin/internal/domain"
)

type NodeRepository struct {
	mock.Mock
}

func (m *NodeRepository) Create(ctx context.Context, node *domain.AlgorithmNode) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *NodeRepository) GetByID(ctx context.Context, vertical domain.Vertical, id uuid.UUID) (*domain.AlgorithmNode, error) {
	args := m.Called(ctx, vertical, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AlgorithmNode), args.Error(1)
}

func (m *NodeRepository) ListChildren(ctx context.Context, vertical domain.Vertical, parentID uuid.UUID) ([]domain.AlgorithmNode, error) {
	args := m.Called(ctx, vertical, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AlgorithmNode), args.Error(1)
}

func (m *NodeRepository) ListRoots(ctx context.Context, vertical domain.Vertical, activatedOnly bool) ([]domain.AlgorithmNode, error) {
	args := m.Called(ctx, vertical, activatedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AlgorithmNode), args.Error(1)
}

func (m *NodeRepository) List(ctx context.Context, vertical domain.Vertical, params domain.PaginationParams) ([]domain.AlgorithmNode, int64, error) {
	args := m.Called(ctx, vertical, params)
	return args.Get(0).([]domain.AlgorithmNode), args.Get(1).(int64), args.Error(2)
}

func (m *NodeRepository) Update(ctx context.Context, node *domain.AlgorithmNode) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *NodeRepository) SetActivated(ctx context.Context, vertical domain.Vertical, id uuid.UUID, activated bool) error {
	args := m.Called(ctx, vertical, id, activated)
	return args.Error(0)
}

func (m *NodeRepository) SoftDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error {
	args := m.Called(ctx, vertical, id)
	return args.Error(0)
}

func (m *NodeRepository) HardDelete(ctx context.Context, vertical domain.Vertical, id uuid.UUID) error {
	args := m.Called(ctx, vertical, id)
	return args.Error(0)
}

func (m *NodeRepository) MarkNotified(ctx context.Context, vertical domain.Vertical, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, vertical, id)
	return args.Bool(0), args.Error(1)
}
