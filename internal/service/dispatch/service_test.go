package dispatch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/mocks"
	"swasthya-admin/internal/service/dispatch"
)

const vertical = domain.VerticalADRGuidance

type fixture struct {
	nodeRepo    *mocks.NodeRepository
	tokenRepo   *mocks.DeviceTokenRepository
	notifRepo   *mocks.NotificationRepository
	audienceSvc *mocks.AudienceService
	pushQueue   *mocks.PushQueue
	svc         dispatch.Service
}

func newFixture() *fixture {
	f := &fixture{
		nodeRepo:    new(mocks.NodeRepository),
		tokenRepo:   new(mocks.DeviceTokenRepository),
		notifRepo:   new(mocks.NotificationRepository),
		audienceSvc: new(mocks.AudienceService),
		pushQueue:   new(mocks.PushQueue),
	}
	f.svc = dispatch.NewService(
		f.nodeRepo, f.tokenRepo, f.notifRepo, f.audienceSvc, f.pushQueue,
		zap.NewNop(), 5*time.Second, "app",
	)
	return f
}

func tokensFor(ids ...uuid.UUID) []domain.DeviceToken {
	tokens := make([]domain.DeviceToken, 0, len(ids))
	for i, id := range ids {
		tokens = append(tokens, domain.DeviceToken{
			ID:                uuid.New(),
			UserID:            id,
			NotificationToken: "token-" + string(rune('a'+i)),
		})
	}
	return tokens
}

func TestDispatchService_Dispatch(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()
	nodeID := uuid.New()

	node := &domain.AlgorithmNode{
		ID:         nodeID,
		Vertical:   vertical,
		Title:      domain.LocalizedText{"en": "New ADR guidance", "hi": "नई जानकारी"},
		IsAllState: true,
		IsAllCadre: true,
		Activated:  true,
	}

	t.Run("Queues One Job For Full Audience", func(t *testing.T) {
		subs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		f := newFixture()
		f.nodeRepo.On("GetByID", ctx, vertical, nodeID).Return(node, nil).Once()
		f.audienceSvc.On("ComputeAudience", mock.Anything, node).Return(subs, nil).Once()
		f.tokenRepo.On("FindBySubscriberIDs", mock.Anything, subs).Return(tokensFor(subs...), nil).Once()
		f.notifRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.NotificationRecord) bool {
			return r.Title == dispatch.NotificationTitle &&
				r.Description == "New ADR guidance" &&
				r.Type == domain.TypeAutomatic &&
				r.Status == domain.NotificationPending &&
				r.CreatedBy == adminID &&
				len(r.UserIDs) == 3 &&
				r.Link == "app://algorithms/adr-guidance"
		})).Return(nil).Once()
		f.pushQueue.On("Enqueue", mock.Anything, mock.MatchedBy(func(j *domain.PushJob) bool {
			return len(j.Tokens) == 3 && j.Vertical == vertical
		})).Return(nil).Once()

		result, err := f.svc.Dispatch(ctx, vertical, nodeID, adminID)

		assert.NoError(t, err)
		assert.True(t, result.Queued)
		assert.Equal(t, 3, result.AudienceSize)
		assert.Equal(t, 3, result.TokenCount)
		assert.NotNil(t, result.NotificationID)

		f.notifRepo.AssertExpectations(t)
		f.pushQueue.AssertExpectations(t)
		f.nodeRepo.AssertNotCalled(t, "MarkNotified", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty Audience Marks Node And Skips Record", func(t *testing.T) {
		f := newFixture()
		f.nodeRepo.On("GetByID", ctx, vertical, nodeID).Return(node, nil).Once()
		f.audienceSvc.On("ComputeAudience", mock.Anything, node).Return([]uuid.UUID{}, nil).Once()
		f.tokenRepo.On("FindBySubscriberIDs", mock.Anything, []uuid.UUID{}).Return([]domain.DeviceToken{}, nil).Once()
		f.nodeRepo.On("MarkNotified", ctx, vertical, nodeID).Return(true, nil).Once()

		result, err := f.svc.Dispatch(ctx, vertical, nodeID, adminID)

		assert.NoError(t, err)
		assert.False(t, result.Queued)
		assert.Equal(t, 0, result.TokenCount)
		assert.Nil(t, result.NotificationID)

		f.nodeRepo.AssertExpectations(t)
		f.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.pushQueue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("Audience With No Tokens Also Marks Node", func(t *testing.T) {
		subs := []uuid.UUID{uuid.New()}

		f := newFixture()
		f.nodeRepo.On("GetByID", ctx, vertical, nodeID).Return(node, nil).Once()
		f.audienceSvc.On("ComputeAudience", mock.Anything, node).Return(subs, nil).Once()
		f.tokenRepo.On("FindBySubscriberIDs", mock.Anything, subs).Return([]domain.DeviceToken{}, nil).Once()
		f.nodeRepo.On("MarkNotified", ctx, vertical, nodeID).Return(true, nil).Once()

		result, err := f.svc.Dispatch(ctx, vertical, nodeID, adminID)

		assert.NoError(t, err)
		assert.False(t, result.Queued)
		assert.Equal(t, 1, result.AudienceSize)
	})

	t.Run("Enqueue Failure Rolls Back Record", func(t *testing.T) {
		subs := []uuid.UUID{uuid.New()}

		f := newFixture()
		f.nodeRepo.On("GetByID", ctx, vertical, nodeID).Return(node, nil).Once()
		f.audienceSvc.On("ComputeAudience", mock.Anything, node).Return(subs, nil).Once()
		f.tokenRepo.On("FindBySubscriberIDs", mock.Anything, subs).Return(tokensFor(subs...), nil).Once()
		f.notifRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.pushQueue.On("Enqueue", mock.Anything, mock.Anything).Return(domain.ErrUpstreamUnavailable).Once()
		f.notifRepo.On("Delete", ctx, mock.Anything).Return(nil).Once()

		result, err := f.svc.Dispatch(ctx, vertical, nodeID, adminID)

		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
		assert.Nil(t, result)
		f.notifRepo.AssertExpectations(t)
	})

	t.Run("Child Node Links To Parent Detail View", func(t *testing.T) {
		parentID := uuid.New()
		child := &domain.AlgorithmNode{
			ID:       nodeID,
			Vertical: vertical,
			ParentID: &parentID,
			Title:    domain.LocalizedText{"en": "Leaf"},
		}
		subs := []uuid.UUID{uuid.New()}

		f := newFixture()
		f.nodeRepo.On("GetByID", ctx, vertical, nodeID).Return(child, nil).Once()
		f.audienceSvc.On("ComputeAudience", mock.Anything, child).Return(subs, nil).Once()
		f.tokenRepo.On("FindBySubscriberIDs", mock.Anything, subs).Return(tokensFor(subs...), nil).Once()
		f.notifRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.NotificationRecord) bool {
			return r.Link == "app://algorithms/adr-guidance/nodes/"+parentID.String()
		})).Return(nil).Once()
		f.pushQueue.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.svc.Dispatch(ctx, vertical, nodeID, adminID)

		assert.NoError(t, err)
		f.notifRepo.AssertExpectations(t)
	})

	t.Run("Node Not Found", func(t *testing.T) {
		f := newFixture()
		f.nodeRepo.On("GetByID", ctx, vertical, nodeID).Return(nil, nil).Once()

		_, err := f.svc.Dispatch(ctx, vertical, nodeID, adminID)

		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})

	t.Run("Audience Failure Propagates Without Record", func(t *testing.T) {
		f := newFixture()
		f.nodeRepo.On("GetByID", ctx, vertical, nodeID).Return(node, nil).Once()
		f.audienceSvc.On("ComputeAudience", mock.Anything, node).Return(nil, errors.New("directory timeout")).Once()

		_, err := f.svc.Dispatch(ctx, vertical, nodeID, adminID)

		assert.Error(t, err)
		f.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
