package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/queue"
	"swasthya-admin/internal/repository"
	"swasthya-admin/internal/service/audience"
)

// NotificationTitle is the fixed title of every automatic dispatch; the
// node's English title travels in the body instead.
const NotificationTitle = "New Content Available"

// Service fans one node's notification out to its eligible audience: it
// computes the audience, resolves device tokens, writes a durable record,
// and enqueues a single delivery job.
type Service interface {
	Dispatch(ctx context.Context, vertical domain.Vertical, nodeID uuid.UUID, actingAdminID uuid.UUID) (*domain.DispatchResult, error)
}

type service struct {
	nodeRepo    repository.NodeRepository
	tokenRepo   repository.DeviceTokenRepository
	notifRepo   repository.NotificationRepository
	audienceSvc audience.Service
	pushQueue   queue.PushQueue
	log         *zap.Logger
	timeout     time.Duration
	linkScheme  string
}

func NewService(
	nodeRepo repository.NodeRepository,
	tokenRepo repository.DeviceTokenRepository,
	notifRepo repository.NotificationRepository,
	audienceSvc audience.Service,
	pushQueue queue.PushQueue,
	log *zap.Logger,
	timeout time.Duration,
	linkScheme string,
) Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if linkScheme == "" {
		linkScheme = "app"
	}
	return &service{
		nodeRepo:    nodeRepo,
		tokenRepo:   tokenRepo,
		notifRepo:   notifRepo,
		audienceSvc: audienceSvc,
		pushQueue:   pushQueue,
		log:         log,
		timeout:     timeout,
		linkScheme:  linkScheme,
	}
}

func (s *service) Dispatch(ctx context.Context, vertical domain.Vertical, nodeID uuid.UUID, actingAdminID uuid.UUID) (*domain.DispatchResult, error) {
	node, err := s.nodeRepo.GetByID(ctx, vertical, nodeID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, domain.ErrNodeNotFound
	}

	audCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	userIDs, err := s.audienceSvc.ComputeAudience(audCtx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to compute audience: %w", err)
	}

	tokenCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tokens, err := s.tokenRepo.FindBySubscriberIDs(tokenCtx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve device tokens: %w", err)
	}

	if len(tokens) == 0 {
		// Nobody reachable: mark the node notified and stop. The flip is
		// conditional on the flag still being false, so two concurrent
		// admin triggers write it once.
		if _, err := s.nodeRepo.MarkNotified(ctx, vertical, node.ID); err != nil {
			return nil, fmt.Errorf("failed to mark node notified: %w", err)
		}

		s.log.Info("dispatch resolved to empty audience",
			zap.String("vertical", vertical.String()),
			zap.String("node_id", node.ID.String()),
			zap.Int("audience_size", len(userIDs)))

		return &domain.DispatchResult{
			AudienceSize: len(userIDs),
			TokenCount:   0,
			Queued:       false,
		}, nil
	}

	record := &domain.NotificationRecord{
		ID:          uuid.New(),
		Title:       NotificationTitle,
		Description: node.EnglishTitle(),
		Link:        s.deepLink(node),
		UserIDs:     domain.UUIDArray(userIDs),
		Status:      domain.NotificationPending,
		Type:        domain.TypeAutomatic,
		Vertical:    vertical,
		NodeID:      node.ID,
		CreatedBy:   actingAdminID,
	}

	if err := s.notifRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create notification record: %w", err)
	}

	job := &domain.PushJob{
		NotificationID: record.ID,
		Title:          record.Title,
		Description:    record.Description,
		Link:           record.Link,
		Tokens:         tokenStrings(tokens),
		Vertical:       vertical,
	}

	queueCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.pushQueue.Enqueue(queueCtx, job); err != nil {
		// Record and enqueue are one logical step: a record with no
		// queued job would read as a sent notification that never was.
		if delErr := s.notifRepo.Delete(ctx, record.ID); delErr != nil {
			s.log.Error("failed to roll back notification record after enqueue failure",
				zap.String("notification_id", record.ID.String()),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to enqueue push job: %w", err)
	}

	s.log.Info("notification dispatched",
		zap.String("vertical", vertical.String()),
		zap.String("node_id", node.ID.String()),
		zap.String("notification_id", record.ID.String()),
		zap.Int("audience_size", len(userIDs)),
		zap.Int("token_count", len(tokens)))

	return &domain.DispatchResult{
		NotificationID: &record.ID,
		AudienceSize:   len(userIDs),
		TokenCount:     len(tokens),
		Queued:         true,
	}, nil
}

// deepLink targets the parent's detail view for child nodes and the
// vertical's top-level screen for roots.
func (s *service) deepLink(node *domain.AlgorithmNode) string {
	if node.ParentID != nil {
		return fmt.Sprintf("%s://algorithms/%s/nodes/%s", s.linkScheme, node.Vertical, node.ParentID)
	}
	return fmt.Sprintf("%s://algorithms/%s", s.linkScheme, node.Vertical)
}

func tokenStrings(tokens []domain.DeviceToken) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.NotificationToken)
	}
	return out
}
