package node_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/mocks"
	"swasthya-admin/internal/service/node"
)

const vertical = domain.VerticalLatentTB

func newService(repo *mocks.NodeRepository, treeSvc *mocks.TreeService) node.Service {
	return node.NewService(repo, treeSvc, zap.NewNop())
}

func TestNodeService_Create(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("Root Node", func(t *testing.T) {
		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)
		repo.On("Create", ctx, mock.MatchedBy(func(n *domain.AlgorithmNode) bool {
			return n.Vertical == vertical && n.ParentID == nil && n.MasterNodeID == nil &&
				n.CreatedBy != nil && *n.CreatedBy == adminID
		})).Return(nil).Once()
		treeSvc.On("InvalidateCache", ctx, vertical).Return(nil).Once()

		created, err := newService(repo, treeSvc).Create(ctx, vertical, adminID, domain.CreateNodeInput{
			Title:     domain.LocalizedText{"en": "Screening"},
			Activated: true,
		})

		assert.NoError(t, err)
		assert.True(t, created.IsRoot())
		repo.AssertExpectations(t)
		treeSvc.AssertExpectations(t)
	})

	t.Run("Child Derives Master From Root Parent", func(t *testing.T) {
		parentID := uuid.New()
		parent := &domain.AlgorithmNode{ID: parentID, Vertical: vertical}

		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)
		repo.On("GetByID", ctx, vertical, parentID).Return(parent, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(n *domain.AlgorithmNode) bool {
			return n.MasterNodeID != nil && *n.MasterNodeID == parentID
		})).Return(nil).Once()
		treeSvc.On("InvalidateCache", ctx, vertical).Return(nil).Once()

		_, err := newService(repo, treeSvc).Create(ctx, vertical, adminID, domain.CreateNodeInput{
			ParentID: &parentID,
			Title:    domain.LocalizedText{"en": "Step"},
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Child Inherits Master From Non Root Parent", func(t *testing.T) {
		rootID := uuid.New()
		parentID := uuid.New()
		grandparentID := uuid.New()
		parent := &domain.AlgorithmNode{
			ID:           parentID,
			Vertical:     vertical,
			ParentID:     &grandparentID,
			MasterNodeID: &rootID,
		}

		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)
		repo.On("GetByID", ctx, vertical, parentID).Return(parent, nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(n *domain.AlgorithmNode) bool {
			return n.MasterNodeID != nil && *n.MasterNodeID == rootID
		})).Return(nil).Once()
		treeSvc.On("InvalidateCache", ctx, vertical).Return(nil).Once()

		_, err := newService(repo, treeSvc).Create(ctx, vertical, adminID, domain.CreateNodeInput{
			ParentID: &parentID,
			Title:    domain.LocalizedText{"en": "Deep step"},
		})

		assert.NoError(t, err)
	})

	t.Run("Missing English Title Rejected", func(t *testing.T) {
		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)

		_, err := newService(repo, treeSvc).Create(ctx, vertical, adminID, domain.CreateNodeInput{
			Title: domain.LocalizedText{"hi": "जांच"},
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Parent Rejected", func(t *testing.T) {
		parentID := uuid.New()
		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)
		repo.On("GetByID", ctx, vertical, parentID).Return(nil, nil).Once()

		_, err := newService(repo, treeSvc).Create(ctx, vertical, adminID, domain.CreateNodeInput{
			ParentID: &parentID,
			Title:    domain.LocalizedText{"en": "Orphan"},
		})

		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})
}

func TestNodeService_Update(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	nodeID := uuid.New()

	existing := func() *domain.AlgorithmNode {
		return &domain.AlgorithmNode{
			ID:       nodeID,
			Vertical: vertical,
			Title:    domain.LocalizedText{"en": "Before"},
			NodeType: "option",
		}
	}

	t.Run("Applies Partial Update", func(t *testing.T) {
		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)
		repo.On("GetByID", ctx, vertical, nodeID).Return(existing(), nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(n *domain.AlgorithmNode) bool {
			return n.Title["en"] == "After" && n.NodeType == "option" &&
				n.UpdatedBy != nil && *n.UpdatedBy == adminID
		})).Return(nil).Once()
		treeSvc.On("InvalidateCache", ctx, vertical).Return(nil).Once()

		updated, err := newService(repo, treeSvc).Update(ctx, vertical, nodeID, adminID, domain.UpdateNodeInput{
			Title: domain.LocalizedText{"en": "After"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "After", updated.Title["en"])
		repo.AssertExpectations(t)
	})

	t.Run("Unknown Node", func(t *testing.T) {
		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)
		repo.On("GetByID", ctx, vertical, nodeID).Return(nil, nil).Once()

		_, err := newService(repo, treeSvc).Update(ctx, vertical, nodeID, adminID, domain.UpdateNodeInput{})

		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})
}

func TestNodeService_Delete(t *testing.T) {
	ctx := context.Background()
	nodeID := uuid.New()

	t.Run("Hard Delete Invalidates Cache", func(t *testing.T) {
		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)
		repo.On("HardDelete", ctx, vertical, nodeID).Return(nil).Once()
		treeSvc.On("InvalidateCache", ctx, vertical).Return(nil).Once()

		err := newService(repo, treeSvc).HardDelete(ctx, vertical, nodeID)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		treeSvc.AssertExpectations(t)
	})

	t.Run("Soft Delete", func(t *testing.T) {
		repo := new(mocks.NodeRepository)
		treeSvc := new(mocks.TreeService)
		repo.On("SoftDelete", ctx, vertical, nodeID).Return(nil).Once()
		treeSvc.On("InvalidateCache", ctx, vertical).Return(nil).Once()

		err := newService(repo, treeSvc).SoftDelete(ctx, vertical, nodeID)

		assert.NoError(t, err)
	})
}
