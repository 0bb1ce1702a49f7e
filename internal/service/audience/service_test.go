package audience_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/mocks"
	"swasthya-admin/internal/service/audience"
)

func TestFanOutFilter(t *testing.T) {
	stateID := uuid.New()
	cadreID := uuid.New()

	t.Run("All Cadre Ignores Cadre IDs Even When Present", func(t *testing.T) {
		node := &domain.AlgorithmNode{
			IsAllCadre: true,
			CadreIDs:   domain.UUIDArray{cadreID},
			IsAllState: true,
		}

		filter := audience.FanOutFilter(node)
		assert.Empty(t, filter.CadreIDs)
		assert.Empty(t, filter.StateIDs)
		assert.True(t, filter.IsEmpty())
	})

	t.Run("Both Constraints Combine", func(t *testing.T) {
		node := &domain.AlgorithmNode{
			CadreIDs: domain.UUIDArray{cadreID},
			StateIDs: domain.UUIDArray{stateID},
		}

		filter := audience.FanOutFilter(node)
		assert.Equal(t, []uuid.UUID{cadreID}, []uuid.UUID(filter.CadreIDs))
		assert.Equal(t, []uuid.UUID{stateID}, []uuid.UUID(filter.StateIDs))
	})

	t.Run("Empty ID Sets Impose No Constraint", func(t *testing.T) {
		node := &domain.AlgorithmNode{}
		assert.True(t, audience.FanOutFilter(node).IsEmpty())
	})
}

func TestRootVisibleTo(t *testing.T) {
	stateID := uuid.New()
	cadreID := uuid.New()
	otherCadre := uuid.New()

	root := func() *domain.AlgorithmNode {
		return &domain.AlgorithmNode{
			Activated: true,
			CadreIDs:  domain.UUIDArray{cadreID},
			StateIDs:  domain.UUIDArray{stateID},
		}
	}

	t.Run("Cadre Match Required", func(t *testing.T) {
		sub := &domain.Subscriber{StateID: &stateID, CadreID: &otherCadre}
		assert.False(t, audience.RootVisibleTo(root(), sub))

		sub.CadreID = &cadreID
		assert.True(t, audience.RootVisibleTo(root(), sub))
	})

	t.Run("All Cadre Admits Any Subscriber Cadre", func(t *testing.T) {
		node := root()
		node.IsAllCadre = true
		sub := &domain.Subscriber{StateID: &stateID, CadreID: &otherCadre}
		assert.True(t, audience.RootVisibleTo(node, sub))
	})

	t.Run("State Check Only Applies Without Recorded State", func(t *testing.T) {
		// Subscriber with a state id passes on cadre alone, whatever the
		// node's state targeting says.
		offTarget := uuid.New()
		sub := &domain.Subscriber{StateID: &offTarget, CadreID: &cadreID}
		assert.True(t, audience.RootVisibleTo(root(), sub))

		// Without a state id, the node must target all states.
		sub = &domain.Subscriber{CadreID: &cadreID}
		assert.False(t, audience.RootVisibleTo(root(), sub))

		node := root()
		node.IsAllState = true
		assert.True(t, audience.RootVisibleTo(node, sub))
	})

	t.Run("Deactivated And Non Root Are Never Visible", func(t *testing.T) {
		sub := &domain.Subscriber{StateID: &stateID, CadreID: &cadreID}

		node := root()
		node.Activated = false
		assert.False(t, audience.RootVisibleTo(node, sub))

		parentID := uuid.New()
		node = root()
		node.ParentID = &parentID
		assert.False(t, audience.RootVisibleTo(node, sub))
	})
}

func TestAudienceService_ComputeAudience(t *testing.T) {
	ctx := context.Background()
	cadreID := uuid.New()
	subA := uuid.New()
	subB := uuid.New()

	node := &domain.AlgorithmNode{
		ID:       uuid.New(),
		Vertical: domain.VerticalTreatment,
		CadreIDs: domain.UUIDArray{cadreID},
	}

	t.Run("Returns Deduplicated Ids", func(t *testing.T) {
		nodeRepo := new(mocks.NodeRepository)
		subRepo := new(mocks.SubscriberRepository)
		subRepo.On("FindMatching", ctx, domain.SubscriberFilter{CadreIDs: []uuid.UUID{cadreID}}).
			Return([]uuid.UUID{subA, subB, subA}, nil).Once()

		svc := audience.NewService(nodeRepo, subRepo)
		ids, err := svc.ComputeAudience(ctx, node)

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{subA, subB}, ids)
		subRepo.AssertExpectations(t)
	})
}

func TestAudienceService_VisibleRoots(t *testing.T) {
	ctx := context.Background()
	subscriberID := uuid.New()
	cadreID := uuid.New()

	visibleRoot := domain.AlgorithmNode{
		ID:         uuid.New(),
		Activated:  true,
		IsAllState: true,
		CadreIDs:   domain.UUIDArray{cadreID},
	}
	hiddenRoot := domain.AlgorithmNode{
		ID:        uuid.New(),
		Activated: true,
		CadreIDs:  domain.UUIDArray{uuid.New()},
	}

	t.Run("Filters By Subscriber Targeting", func(t *testing.T) {
		nodeRepo := new(mocks.NodeRepository)
		subRepo := new(mocks.SubscriberRepository)
		subRepo.On("GetByID", ctx, subscriberID).
			Return(&domain.Subscriber{ID: subscriberID, CadreID: &cadreID}, nil).Once()
		nodeRepo.On("ListRoots", ctx, domain.VerticalDiagnosis, true).
			Return([]domain.AlgorithmNode{visibleRoot, hiddenRoot}, nil).Once()

		svc := audience.NewService(nodeRepo, subRepo)
		roots, err := svc.VisibleRoots(ctx, domain.VerticalDiagnosis, subscriberID)

		assert.NoError(t, err)
		assert.Len(t, roots, 1)
		assert.Equal(t, visibleRoot.ID, roots[0].ID)
	})

	t.Run("Unknown Subscriber", func(t *testing.T) {
		nodeRepo := new(mocks.NodeRepository)
		subRepo := new(mocks.SubscriberRepository)
		subRepo.On("GetByID", ctx, subscriberID).Return(nil, nil).Once()

		svc := audience.NewService(nodeRepo, subRepo)
		_, err := svc.VisibleRoots(ctx, domain.VerticalDiagnosis, subscriberID)

		assert.ErrorIs(t, err, domain.ErrSubscriberNotFound)
	})
}
